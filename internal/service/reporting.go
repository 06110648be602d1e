package service

import (
	"context"
	"math"
	"time"

	"gorm.io/gorm"

	"pos-backend/internal/models"
)

// Segment is a fixed block of hours-of-day used to bucket bill timestamps.
// StartHour is inclusive, EndHour exclusive.
type Segment struct {
	Label     string
	StartHour int
	EndHour   int
}

// DefaultSegments covers the full day in six 4-hour blocks. The table is
// configuration, not derived data; it must stay contiguous and
// non-overlapping.
var DefaultSegments = []Segment{
	{Label: "00:00-03:59", StartHour: 0, EndHour: 4},
	{Label: "04:00-07:59", StartHour: 4, EndHour: 8},
	{Label: "08:00-11:59", StartHour: 8, EndHour: 12},
	{Label: "12:00-15:59", StartHour: 12, EndHour: 16},
	{Label: "16:00-19:59", StartHour: 16, EndHour: 20},
	{Label: "20:00-23:59", StartHour: 20, EndHour: 24},
}

// ReportingService aggregates persisted bills into dashboard statistics.
// All reads are uncoordinated with writers; a bill created mid-query may or
// may not be included.
type ReportingService struct {
	db       *gorm.DB
	loc      *time.Location
	segments []Segment
	now      func() time.Time
}

func NewReportingService(db *gorm.DB, loc *time.Location, segments []Segment) *ReportingService {
	if loc == nil {
		loc = time.Local
	}
	if len(segments) == 0 {
		segments = DefaultSegments
	}
	return &ReportingService{db: db, loc: loc, segments: segments, now: time.Now}
}

type DashboardStats struct {
	TotalBills         int     `json:"totalBills"`
	TotalAmount        float64 `json:"totalAmount"`
	AvgDiscount        float64 `json:"avgDiscount"`
	MostActiveSegment  string  `json:"mostActiveSegment"`
	RecurringCustomers int     `json:"recurringCustomers"`
	NewCustomers       int     `json:"newCustomers"`
}

// ResolveWindow derives the reporting window from a named period in the
// configured timezone: daily (default) is today, weekly runs from the most
// recent Sunday, monthly covers the current calendar month. Bounds are
// 00:00:00.000 and 23:59:59.999 wall-clock.
func (s *ReportingService) ResolveWindow(period string) (start, end time.Time) {
	now := s.now().In(s.loc)
	switch period {
	case "weekly":
		sunday := now.AddDate(0, 0, -int(now.Weekday()))
		start = startOfDay(sunday)
		end = endOfDay(now)
	case "monthly":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
		lastDay := start.AddDate(0, 1, -1)
		end = endOfDay(lastDay)
	default: // daily
		start = startOfDay(now)
		end = endOfDay(now)
	}
	return start, end
}

// Dashboard computes stats over [start, end]. When explicit bounds are nil
// the window is resolved from period.
func (s *ReportingService) Dashboard(ctx context.Context, period string, startDate, endDate *time.Time) (*DashboardStats, error) {
	var start, end time.Time
	if startDate != nil && endDate != nil {
		start = *startDate
		end = endOfDay(endDate.In(s.loc))
	} else {
		start, end = s.ResolveWindow(period)
	}

	var bills []models.Bill
	if err := s.db.WithContext(ctx).
		Where("created_at BETWEEN ? AND ?", start, end).
		Find(&bills).Error; err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalBills:        len(bills),
		MostActiveSegment: s.segments[0].Label,
	}

	var discountPctSum float64
	counts := make([]int, len(s.segments))
	for _, b := range bills {
		stats.TotalAmount += b.GrandTotal
		// A zero subtotal contributes zero instead of dividing by zero;
		// the bill still counts toward the mean's denominator.
		if b.SubTotal != 0 {
			discountPctSum += (b.Discount / b.SubTotal) * 100
		}
		hour := b.CreatedAt.In(s.loc).Hour()
		for i, seg := range s.segments {
			if hour >= seg.StartHour && hour < seg.EndHour {
				counts[i]++
				break
			}
		}
	}

	if len(bills) > 0 {
		stats.AvgDiscount = math.Round(discountPctSum/float64(len(bills))*100) / 100
	}

	// First segment reaching the maximum wins ties.
	best := 0
	for i, c := range counts {
		if c > counts[best] {
			best = i
		}
	}
	stats.MostActiveSegment = s.segments[best].Label

	recurring, fresh, err := s.classifyCustomers(ctx, bills, start)
	if err != nil {
		return nil, err
	}
	stats.RecurringCustomers = recurring
	stats.NewCustomers = fresh

	return stats, nil
}

// classifyCustomers partitions the distinct phones of the window's bills:
// a phone with any bill strictly before the window start is recurring,
// otherwise new. One existence query per distinct phone; backed by the
// (phone, created_at) index on bills.
func (s *ReportingService) classifyCustomers(ctx context.Context, bills []models.Bill, start time.Time) (recurring, fresh int, err error) {
	seen := make(map[string]struct{}, len(bills))
	for _, b := range bills {
		if _, ok := seen[b.Phone]; ok {
			continue
		}
		seen[b.Phone] = struct{}{}

		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Bill{}).
			Where("phone = ? AND created_at < ?", b.Phone, start).
			Limit(1).Count(&count).Error; err != nil {
			return 0, 0, err
		}
		if count > 0 {
			recurring++
		} else {
			fresh++
		}
	}
	return recurring, fresh, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

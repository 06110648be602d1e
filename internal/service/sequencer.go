package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"pos-backend/internal/models"
)

// sequencer retry bound for lock/deadlock contention. Contention is handled
// here and never surfaced to callers.
const maxSequenceRetries = 3

// BillSequencer issues unique, strictly increasing bill identifiers of the
// form PREFIX + zero-padded counter (VANS0001, VANS0002, ...). The counter
// lives in a dedicated sequences row bumped with an atomic UPDATE inside the
// reserving transaction, so two concurrent callers can never read the same
// value. Padding grows past the configured width once the counter overflows
// it.
type BillSequencer struct {
	db     *gorm.DB
	name   string
	prefix string
	pad    int
}

func NewBillSequencer(db *gorm.DB, prefix string, pad int) *BillSequencer {
	if pad <= 0 {
		pad = 4
	}
	return &BillSequencer{db: db, name: "bill_id", prefix: prefix, pad: pad}
}

// Next reserves the next identifier in its own transaction, retrying a
// bounded number of times on lock contention.
func (s *BillSequencer) Next(ctx context.Context) (string, error) {
	var lastErr error
	for attempt := 0; attempt < maxSequenceRetries; attempt++ {
		var id string
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var err error
			id, err = s.NextTx(tx)
			return err
		})
		if err == nil {
			return id, nil
		}
		if !isContention(err) {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("sequence reservation failed after %d attempts: %w", maxSequenceRetries, lastErr)
}

// NextTx reserves the next identifier inside the caller's transaction. A
// rollback releases the reservation, so a failed bill create leaves no gap.
func (s *BillSequencer) NextTx(tx *gorm.DB) (string, error) {
	n, err := s.reserve(tx)
	if err != nil {
		return "", err
	}
	return s.Format(n), nil
}

// Format renders a counter value as a bill identifier.
func (s *BillSequencer) Format(n uint64) string {
	return fmt.Sprintf("%s%0*d", s.prefix, s.pad, n)
}

// reserve bumps the counter row and reads the reserved value back. The
// UPDATE takes a row lock held until the transaction commits, which
// serializes concurrent reservations without a separate locking clause.
func (s *BillSequencer) reserve(tx *gorm.DB) (uint64, error) {
	res := tx.Model(&models.Sequence{}).Where("name = ?", s.name).
		UpdateColumn("value", gorm.Expr("value + ?", 1))
	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected == 0 {
		// First ever reservation: seed the counter from the highest
		// already-assigned suffix so existing data keeps its ordering.
		start, err := s.highestAssigned(tx)
		if err != nil {
			return 0, err
		}
		seq := models.Sequence{Name: s.name, Value: start + 1}
		err = tx.Create(&seq).Error
		if err == nil {
			return seq.Value, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, err
		}
		// A concurrent caller won the insert; fall through to a plain bump.
		bump := tx.Model(&models.Sequence{}).Where("name = ?", s.name).
			UpdateColumn("value", gorm.Expr("value + ?", 1))
		if bump.Error != nil {
			return 0, bump.Error
		}
	}

	var seq models.Sequence
	if err := tx.Where("name = ?", s.name).First(&seq).Error; err != nil {
		return 0, err
	}
	return seq.Value, nil
}

// highestAssigned parses the numeric suffix of every existing bill id with
// this sequencer's prefix and returns the maximum.
func (s *BillSequencer) highestAssigned(tx *gorm.DB) (uint64, error) {
	var billIDs []string
	if err := tx.Model(&models.Bill{}).Where("bill_id LIKE ?", s.prefix+"%").
		Pluck("bill_id", &billIDs).Error; err != nil {
		return 0, err
	}
	var max uint64
	for _, id := range billIDs {
		n, err := strconv.ParseUint(strings.TrimPrefix(id, s.prefix), 10, 64)
		if err == nil && n > max {
			max = n
		}
	}
	return max, nil
}

func isContention(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "lock wait timeout")
}

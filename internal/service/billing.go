package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"pos-backend/internal/models"
	"pos-backend/pkg/logger"
)

// BillingService orchestrates bill creation and mutation. Creation is
// all-or-nothing: line resolution, customer lookup, identifier reservation
// and the insert all run in one transaction, so no partial bill is ever
// persisted.
type BillingService struct {
	db  *gorm.DB
	seq *BillSequencer
	log zerolog.Logger
}

func NewBillingService(db *gorm.DB, seq *BillSequencer) *BillingService {
	return &BillingService{db: db, seq: seq, log: logger.WithComponent("billing")}
}

type LineInput struct {
	Item     uint `json:"item" binding:"required"`
	Quantity int  `json:"quantity"`
}

type CreateBillInput struct {
	Phone         string
	Items         []LineInput
	Discount      float64
	PaymentMethod models.PaymentMethod
	CreatedBy     *uint
}

func (s *BillingService) CreateBill(ctx context.Context, in CreateBillInput) (*models.Bill, error) {
	if in.Phone == "" || len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: phone and items are required", ErrInvalidInput)
	}
	if in.Discount < 0 {
		return nil, fmt.Errorf("%w: discount cannot be negative", ErrInvalidInput)
	}
	method := in.PaymentMethod
	if method == "" {
		method = models.PaymentCash
	}
	if !method.Valid() {
		return nil, fmt.Errorf("%w: payment method %q", ErrInvalidInput, method)
	}

	var bill *models.Bill
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := findOrCreateUser(tx, in.Phone)
		if err != nil {
			return err
		}

		lines, subTotal, err := resolveLines(tx, in.Items)
		if err != nil {
			return err
		}

		// Discount is applied verbatim: it may exceed the subtotal and
		// produce a negative grand total.
		grandTotal := subTotal - in.Discount

		billID, err := s.seq.NextTx(tx)
		if err != nil {
			return err
		}

		bill = &models.Bill{
			BillID:        billID,
			UserID:        user.ID,
			Phone:         user.Phone,
			Items:         lines,
			SubTotal:      subTotal,
			Discount:      in.Discount,
			GrandTotal:    grandTotal,
			PaymentMethod: method,
			Status:        models.StatusPaid,
			CreatedBy:     in.CreatedBy,
		}
		return tx.Create(bill).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("bill_id", bill.BillID).Float64("grand_total", bill.GrandTotal).Msg("bill created")
	return bill, nil
}

type EditBillInput struct {
	Items         []LineInput
	Discount      *float64
	PaymentMethod *models.PaymentMethod
}

// EditBill replaces line items and/or the discount, recomputing totals with
// the same algorithm as creation. When items are supplied without a new
// discount the stored discount is reused.
func (s *BillingService) EditBill(ctx context.Context, id uint, in EditBillInput) (*models.Bill, error) {
	if in.PaymentMethod != nil && !in.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: payment method %q", ErrInvalidInput, *in.PaymentMethod)
	}

	var bill models.Bill
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&bill, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBillNotFound
			}
			return err
		}

		if len(in.Items) > 0 {
			lines, subTotal, err := resolveLines(tx, in.Items)
			if err != nil {
				return err
			}
			if err := tx.Where("bill_ref = ?", bill.ID).Delete(&models.BillLine{}).Error; err != nil {
				return err
			}
			for i := range lines {
				lines[i].BillRef = bill.ID
			}
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
			discount := bill.Discount
			if in.Discount != nil {
				discount = *in.Discount
			}
			bill.Items = lines
			bill.SubTotal = subTotal
			bill.GrandTotal = subTotal - discount
		}

		if in.Discount != nil {
			bill.Discount = *in.Discount
			bill.GrandTotal = bill.SubTotal - *in.Discount
		}

		if in.PaymentMethod != nil {
			bill.PaymentMethod = *in.PaymentMethod
		}

		return tx.Omit("Items", "User").Save(&bill).Error
	})
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (s *BillingService) UpdateStatus(ctx context.Context, id uint, status models.BillStatus) (*models.Bill, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var bill models.Bill
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&bill, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBillNotFound
			}
			return err
		}
		bill.Status = status
		return tx.Omit("Items", "User").Save(&bill).Error
	})
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// DeleteBill hard-deletes a bill and its lines.
func (s *BillingService) DeleteBill(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Bill{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrBillNotFound
		}
		return tx.Where("bill_ref = ?", id).Delete(&models.BillLine{}).Error
	})
}

func (s *BillingService) GetByBillID(ctx context.Context, billID string) (*models.Bill, error) {
	var bill models.Bill
	err := s.db.WithContext(ctx).Preload("Items").Preload("User").
		Where("bill_id = ?", billID).First(&bill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, err
	}
	return &bill, nil
}

type BillPage struct {
	Bills []models.Bill `json:"bills"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Pages int           `json:"pages"`
}

// List returns bills newest first with optional status filtering.
func (s *BillingService) List(ctx context.Context, status models.BillStatus, page, limit int) (*BillPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := s.db.WithContext(ctx).Model(&models.Bill{})
	if status != "" {
		if !status.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
		}
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	skip := (page - 1) * limit
	bills := []models.Bill{}
	if err := query.Session(&gorm.Session{}).Preload("Items").Preload("User").
		Order("created_at desc").Offset(skip).Limit(limit).
		Find(&bills).Error; err != nil {
		return nil, err
	}

	return &BillPage{
		Bills: bills,
		Total: total,
		Page:  page,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

func (s *BillingService) BillsByPhone(ctx context.Context, phone string) ([]models.Bill, error) {
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	bills := []models.Bill{}
	if err := s.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", user.ID).Order("created_at desc").
		Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

func (s *BillingService) SearchUsersByPhone(ctx context.Context, phone string) ([]models.User, error) {
	if phone == "" {
		return nil, fmt.Errorf("%w: phone query is required", ErrInvalidInput)
	}
	users := []models.User{}
	if err := s.db.WithContext(ctx).Where("phone LIKE ?", "%"+phone+"%").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// findOrCreateUser resolves a customer by phone, creating one lazily on
// first sight. Losing a concurrent create to the unique phone index is
// resolved by re-reading.
func findOrCreateUser(tx *gorm.DB, phone string) (*models.User, error) {
	var user models.User
	err := tx.Where("phone = ?", phone).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = models.User{
		UserID: "USR-" + uuid.NewString(),
		Phone:  phone,
		Roles:  models.RoleUser,
	}
	if err := tx.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := tx.Where("phone = ?", phone).First(&user).Error; err != nil {
				return nil, err
			}
			return &user, nil
		}
		return nil, err
	}
	return &user, nil
}

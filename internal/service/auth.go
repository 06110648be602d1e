package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"pos-backend/config"
	"pos-backend/internal/models"
	"pos-backend/internal/notify"
	"pos-backend/internal/utils"
	"pos-backend/pkg/logger"
)

// AuthService implements the OTP signup/login flows. Codes are stored
// bcrypt-hashed with a short expiry and deleted on first successful use.
// Delivery goes through the notifier fire-and-forget: a failed send is
// logged, not retried, and does not fail the request.
type AuthService struct {
	db       *gorm.DB
	notifier notify.Notifier
	otpLen   int
	expiry   time.Duration
	log      zerolog.Logger
}

func NewAuthService(db *gorm.DB, notifier notify.Notifier, cfg config.OtpConfig) *AuthService {
	length := cfg.Length
	if length < 4 {
		length = 6
	}
	expiry := time.Duration(cfg.ExpiryMinutes) * time.Minute
	if expiry <= 0 {
		expiry = 5 * time.Minute
	}
	return &AuthService{
		db:       db,
		notifier: notifier,
		otpLen:   length,
		expiry:   expiry,
		log:      logger.WithComponent("auth"),
	}
}

// Signup starts registration for a new customer and sends an OTP. The user
// record is only created once the code is verified.
func (s *AuthService) Signup(ctx context.Context, name, email, phone string) error {
	if name == "" || email == "" || phone == "" {
		return fmt.Errorf("%w: name, email, phone are required", ErrInvalidInput)
	}

	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ? OR phone = ?", email, phone).First(&existing).Error
	if err == nil {
		return fmt.Errorf("%w: user already exists, please login", ErrDuplicate)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.issueOtp(ctx, phone)
}

// VerifySignup checks the OTP, creates the user and returns it with a JWT.
func (s *AuthService) VerifySignup(ctx context.Context, name, email, phone, code string) (*models.User, string, error) {
	if name == "" || email == "" || phone == "" || code == "" {
		return nil, "", fmt.Errorf("%w: all fields are required", ErrInvalidInput)
	}

	if err := s.verifyCode(ctx, phone, code); err != nil {
		return nil, "", err
	}

	var existing models.User
	err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&existing).Error
	if err == nil {
		return nil, "", fmt.Errorf("%w: user already exists, use login", ErrDuplicate)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	user := models.User{
		UserID: "USR-" + uuid.NewString(),
		Name:   name,
		Email:  email,
		Phone:  phone,
		Roles:  models.RoleUser,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", fmt.Errorf("%w: user already exists", ErrDuplicate)
		}
		return nil, "", err
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Login sends an OTP to an existing customer.
func (s *AuthService) Login(ctx context.Context, phone string) error {
	if phone == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return s.issueOtp(ctx, phone)
}

// VerifyLogin checks the OTP and returns the user with a JWT.
func (s *AuthService) VerifyLogin(ctx context.Context, phone, code string) (*models.User, string, error) {
	if phone == "" || code == "" {
		return nil, "", fmt.Errorf("%w: phone and otp are required", ErrInvalidInput)
	}

	if err := s.verifyCode(ctx, phone, code); err != nil {
		return nil, "", err
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *AuthService) issueOtp(ctx context.Context, phone string) error {
	code, err := randomDigits(s.otpLen)
	if err != nil {
		return err
	}
	hash, err := utils.HashSecret(code)
	if err != nil {
		return err
	}

	otp := models.Otp{
		Phone:     phone,
		CodeHash:  hash,
		ExpiresAt: time.Now().Add(s.expiry),
	}
	if err := s.db.WithContext(ctx).Create(&otp).Error; err != nil {
		return err
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.notifier.Send(sendCtx, phone, "Your verification code is "+code); err != nil {
			s.log.Error().Err(err).Str("phone", phone).Msg("otp delivery failed")
		}
	}()
	return nil
}

func (s *AuthService) verifyCode(ctx context.Context, phone, code string) error {
	var otps []models.Otp
	if err := s.db.WithContext(ctx).
		Where("phone = ? AND expires_at > ?", phone, time.Now()).
		Order("created_at desc").Find(&otps).Error; err != nil {
		return err
	}

	for _, otp := range otps {
		if utils.CheckSecretHash(code, otp.CodeHash) {
			return s.db.WithContext(ctx).Delete(&models.Otp{}, otp.ID).Error
		}
	}
	return ErrInvalidOtp
}

// randomDigits returns n cryptographically random decimal digits with a
// non-zero leading digit.
func randomDigits(n int) (string, error) {
	min := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n-1)), nil)
	max := new(big.Int).Mul(min, big.NewInt(10))
	num, err := rand.Int(rand.Reader, new(big.Int).Sub(max, min))
	if err != nil {
		return "", err
	}
	return new(big.Int).Add(num, min).String(), nil
}

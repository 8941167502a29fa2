package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"regexp"
	"time"

	"github.com/nimamdd/medident/internal/models"
	"github.com/nimamdd/medident/internal/redis"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var phonePattern = regexp.MustCompile(`^\d{11}$`)

// OTPStore holds pending verification codes. Satisfied by redis.Client.
type OTPStore interface {
	SetOTP(phone string, entry *redis.OTPEntry, ttl time.Duration) error
	GetOTP(phone string) (*redis.OTPEntry, error)
	UpdateOTP(phone string, entry *redis.OTPEntry) error
	DeleteOTP(phone string) error
}

// SMSSender delivers the code. Satisfied by sms.Client.
type SMSSender interface {
	SendOTP(phone, code string) error
}

type AuthService interface {
	// RequestOTP generates a one-time code for the phone, stores its hash
	// with a TTL and attempt budget, and hands it to the SMS gateway.
	RequestOTP(phone string) error
	// VerifyOTP checks the code, burns it on success and returns a signed
	// access token for the (possibly just created) user.
	VerifyOTP(phone, code string) (string, *models.User, error)
}

type authService struct {
	users       UserService
	otps        OTPStore
	sms         SMSSender
	jwtSecret   string
	tokenTTL    time.Duration
	otpTTL      time.Duration
	maxAttempts int
}

func NewAuthService(users UserService, otps OTPStore, smsClient SMSSender, jwtSecret string, tokenTTL, otpTTL time.Duration, maxAttempts int) AuthService {
	return &authService{
		users:       users,
		otps:        otps,
		sms:         smsClient,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		otpTTL:      otpTTL,
		maxAttempts: maxAttempts,
	}
}

func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (s *authService) RequestOTP(phone string) error {
	if !phonePattern.MatchString(phone) {
		return &ValidationError{Reason: "phone number must be 11 digits"}
	}

	code, err := generateOTPCode()
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	entry := &redis.OTPEntry{
		CodeHash:     string(hash),
		AttemptsLeft: s.maxAttempts,
	}
	if err := s.otps.SetOTP(phone, entry, s.otpTTL); err != nil {
		return err
	}

	// Delivery failures must not invalidate the issued code; the user can
	// retry the request.
	if err := s.sms.SendOTP(phone, code); err != nil {
		log.Printf("Failed to send OTP to %s: %v", phone, err)
	}

	return nil
}

func (s *authService) VerifyOTP(phone, code string) (string, *models.User, error) {
	if !phonePattern.MatchString(phone) {
		return "", nil, &ValidationError{Reason: "phone number must be 11 digits"}
	}

	entry, err := s.otps.GetOTP(phone)
	if err != nil {
		if errors.Is(err, redis.ErrOTPNotFound) {
			return "", nil, ErrOTPInvalid
		}
		return "", nil, err
	}

	if entry.AttemptsLeft <= 0 {
		_ = s.otps.DeleteOTP(phone)
		return "", nil, ErrOTPTooManyAttempts
	}

	if bcrypt.CompareHashAndPassword([]byte(entry.CodeHash), []byte(code)) != nil {
		entry.AttemptsLeft--
		if err := s.otps.UpdateOTP(phone, entry); err != nil {
			return "", nil, err
		}
		return "", nil, ErrOTPInvalid
	}

	// Single use: the code is gone the moment it verifies.
	if err := s.otps.DeleteOTP(phone); err != nil {
		return "", nil, err
	}

	user, err := s.users.GetOrCreateByPhone(phone)
	if err != nil {
		return "", nil, err
	}
	if !user.IsActive {
		return "", nil, ErrForbidden
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *authService) issueToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

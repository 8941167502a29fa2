package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/nimamdd/medident/internal/models"
	"github.com/nimamdd/medident/internal/redis"
	"github.com/nimamdd/medident/internal/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

// fakeOTPStore keeps entries in a map; TTL expiry is not simulated, absence
// stands in for it.
type fakeOTPStore struct {
	entries map[string]*redis.OTPEntry
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{entries: make(map[string]*redis.OTPEntry)}
}

func (s *fakeOTPStore) SetOTP(phone string, entry *redis.OTPEntry, ttl time.Duration) error {
	cp := *entry
	s.entries[phone] = &cp
	return nil
}

func (s *fakeOTPStore) GetOTP(phone string) (*redis.OTPEntry, error) {
	entry, ok := s.entries[phone]
	if !ok {
		return nil, redis.ErrOTPNotFound
	}
	cp := *entry
	return &cp, nil
}

func (s *fakeOTPStore) UpdateOTP(phone string, entry *redis.OTPEntry) error {
	cp := *entry
	s.entries[phone] = &cp
	return nil
}

func (s *fakeOTPStore) DeleteOTP(phone string) error {
	delete(s.entries, phone)
	return nil
}

// fakeSMS records the last code handed to the gateway.
type fakeSMS struct {
	lastPhone string
	lastCode  string
	fail      bool
}

func (s *fakeSMS) SendOTP(phone, code string) error {
	s.lastPhone = phone
	s.lastCode = code
	if s.fail {
		return errors.New("gateway unavailable")
	}
	return nil
}

func newAuthFixture(t *testing.T) (services.AuthService, *fakeStore, *fakeOTPStore, *fakeSMS) {
	t.Helper()
	store := newFakeStore()
	otps := newFakeOTPStore()
	smsClient := &fakeSMS{}
	svc := services.NewAuthService(
		services.NewUserService(store),
		otps,
		smsClient,
		testJWTSecret,
		time.Hour,
		2*time.Minute,
		3,
	)
	return svc, store, otps, smsClient
}

func TestRequestOTP_StoresHashAndSendsCode(t *testing.T) {
	svc, _, otps, smsClient := newAuthFixture(t)

	require.NoError(t, svc.RequestOTP("09121234567"))

	require.Equal(t, "09121234567", smsClient.lastPhone)
	require.Len(t, smsClient.lastCode, 6)

	entry, err := otps.GetOTP("09121234567")
	require.NoError(t, err)
	require.Equal(t, 3, entry.AttemptsLeft)
	// Only the hash is stored, never the code itself.
	require.NotContains(t, entry.CodeHash, smsClient.lastCode)
}

func TestRequestOTP_InvalidPhone(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	err := svc.RequestOTP("12345")
	var validation *services.ValidationError
	require.True(t, errors.As(err, &validation))
}

func TestRequestOTP_DeliveryFailureKeepsCode(t *testing.T) {
	svc, _, otps, smsClient := newAuthFixture(t)
	smsClient.fail = true

	require.NoError(t, svc.RequestOTP("09121234567"))

	_, err := otps.GetOTP("09121234567")
	require.NoError(t, err)
}

func TestVerifyOTP_CreatesUserAndIssuesToken(t *testing.T) {
	svc, store, _, smsClient := newAuthFixture(t)

	require.NoError(t, svc.RequestOTP("09121234567"))
	token, user, err := svc.VerifyOTP("09121234567", smsClient.lastCode)
	require.NoError(t, err)
	require.Equal(t, "09121234567", user.Phone)
	require.Equal(t, string(models.RoleCustomer), user.Role)

	stored, err := store.Users().GetByPhone("09121234567")
	require.NoError(t, err)
	require.Equal(t, user.ID, stored.ID)

	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, user.ID, claims["sub"])
	require.Equal(t, user.Role, claims["role"])
}

func TestVerifyOTP_SingleUse(t *testing.T) {
	svc, _, _, smsClient := newAuthFixture(t)

	require.NoError(t, svc.RequestOTP("09121234567"))
	_, _, err := svc.VerifyOTP("09121234567", smsClient.lastCode)
	require.NoError(t, err)

	_, _, err = svc.VerifyOTP("09121234567", smsClient.lastCode)
	require.ErrorIs(t, err, services.ErrOTPInvalid)
}

func TestVerifyOTP_WrongCodeBurnsAttempts(t *testing.T) {
	svc, _, _, smsClient := newAuthFixture(t)

	require.NoError(t, svc.RequestOTP("09121234567"))

	for i := 0; i < 3; i++ {
		_, _, err := svc.VerifyOTP("09121234567", "000000")
		require.ErrorIs(t, err, services.ErrOTPInvalid)
	}

	// Attempt budget exhausted; even the right code is rejected now.
	_, _, err := svc.VerifyOTP("09121234567", smsClient.lastCode)
	require.ErrorIs(t, err, services.ErrOTPTooManyAttempts)

	// And the entry is gone entirely.
	_, _, err = svc.VerifyOTP("09121234567", smsClient.lastCode)
	require.ErrorIs(t, err, services.ErrOTPInvalid)
}

func TestVerifyOTP_ExistingUserKeepsRole(t *testing.T) {
	svc, store, _, smsClient := newAuthFixture(t)

	admin := &models.User{Phone: "09121234567", Role: string(models.RoleAdmin), IsActive: true}
	require.NoError(t, store.Users().Create(admin))

	require.NoError(t, svc.RequestOTP("09121234567"))
	_, user, err := svc.VerifyOTP("09121234567", smsClient.lastCode)
	require.NoError(t, err)
	require.Equal(t, admin.ID, user.ID)
	require.Equal(t, string(models.RoleAdmin), user.Role)
}

func TestVerifyOTP_InactiveUserRejected(t *testing.T) {
	svc, store, _, smsClient := newAuthFixture(t)

	blocked := &models.User{Phone: "09121234567", Role: string(models.RoleCustomer), IsActive: false}
	require.NoError(t, store.Users().Create(blocked))

	require.NoError(t, svc.RequestOTP("09121234567"))
	_, _, err := svc.VerifyOTP("09121234567", smsClient.lastCode)
	require.ErrorIs(t, err, services.ErrForbidden)
}

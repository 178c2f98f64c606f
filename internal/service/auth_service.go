// Package service provides the mocked backend facades. Each facade
// simulates network latency and serves deterministic results from
// in-memory tables; callers must treat every call as fallible.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"smartpark/internal/domain"
)

var (
	// ErrInvalidCredentials represents a login failure.
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	// ErrEmailInUse is returned when registering a duplicate email.
	ErrEmailInUse = errors.New("auth: email already registered")
	// ErrUserNotFound is returned when a token resolves to no user.
	ErrUserNotFound = errors.New("auth: user not found")
	// ErrInvalidToken is returned for unparseable or expired tokens.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrInvalidNumber rejects mobile numbers that are not 10 digits.
	ErrInvalidNumber = errors.New("auth: invalid mobile number")
	// ErrRateLimited throttles repeated OTP sends.
	ErrRateLimited = errors.New("auth: too many OTP requests, try again later")
	// ErrInvalidOTP rejects wrong verification codes.
	ErrInvalidOTP = errors.New("auth: invalid OTP")
)

// testOTP is the fixed code accepted for any mobile number in test mode.
const testOTP = "123456"

const (
	otpWindow   = time.Minute
	otpMaxSends = 3
)

var mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)

type mockUser struct {
	user         domain.User
	passwordHash []byte
}

// AuthService simulates the platform's authentication backend.
type AuthService struct {
	mu       sync.Mutex
	users    map[string]*mockUser // keyed by email
	byID     map[string]*mockUser
	byMobile map[string]*mockUser
	otpSends map[string][]time.Time

	tokens  *TokenService
	latency time.Duration
	logger  *zap.Logger
}

// NewAuthService builds the facade with the standard test accounts seeded.
func NewAuthService(tokens *TokenService, latency time.Duration, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AuthService{
		users:    make(map[string]*mockUser),
		byID:     make(map[string]*mockUser),
		byMobile: make(map[string]*mockUser),
		otpSends: make(map[string][]time.Time),
		tokens:   tokens,
		latency:  latency,
		logger:   logger,
	}
	s.seed()
	return s
}

func (s *AuthService) seed() {
	seedTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	accounts := []struct {
		user     domain.User
		password string
	}{
		{
			user: domain.User{
				ID: "1", Email: "user@test.com", FirstName: "John", LastName: "Doe",
				Phone: "9876543210", Role: domain.RoleUser, FastagID: "FT111111111",
				IsVerified: true, CreatedAt: seedTime, UpdatedAt: seedTime,
			},
			password: "password123",
		},
		{
			user: domain.User{
				ID: "2", Email: "admin@test.com", FirstName: "Admin", LastName: "Test",
				Phone: "9876543220", Role: domain.RoleAdmin, FastagID: "FT999999999",
				IsVerified: true, CreatedAt: seedTime, UpdatedAt: seedTime,
			},
			password: "admin123",
		},
		{
			user: domain.User{
				ID: "3", Email: "jane@test.com", FirstName: "Jane", LastName: "Smith",
				Phone: "9876543230", Role: domain.RoleUser, FastagID: "FT456789123",
				IsVerified: true, CreatedAt: seedTime, UpdatedAt: seedTime,
				Vehicles: []domain.Vehicle{{
					ID: "v3", UserID: "3", LicensePlate: "MH 12 JS 9012",
					Make: "Honda", Model: "CBR", Color: "Red",
					VehicleType: domain.VehicleMotorcycle, IsActive: true,
				}},
			},
			password: "jane123",
		},
	}
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.MinCost)
		if err != nil {
			panic(fmt.Sprintf("seed user %s: %v", a.user.Email, err))
		}
		mu := &mockUser{user: a.user, passwordHash: hash}
		s.users[a.user.Email] = mu
		s.byID[a.user.ID] = mu
		s.byMobile[a.user.Phone] = mu
	}
}

// Login authenticates by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.AuthSession, error) {
	if err := s.sleep(ctx); err != nil {
		return domain.AuthSession{}, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.AuthSession{}, ErrInvalidCredentials
	}

	s.mu.Lock()
	mu, ok := s.users[email]
	s.mu.Unlock()
	if !ok {
		return domain.AuthSession{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(mu.passwordHash, []byte(password)); err != nil {
		return domain.AuthSession{}, ErrInvalidCredentials
	}
	return s.openSession(mu.user)
}

// RegisterRequest carries sign-up input.
type RegisterRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	FastagID  string
}

// Register creates a user and logs them in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (domain.AuthSession, error) {
	if err := s.sleep(ctx); err != nil {
		return domain.AuthSession{}, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return domain.AuthSession{}, errors.New("auth: email required")
	}
	if req.Password == "" {
		return domain.AuthSession{}, errors.New("auth: password required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[email]; exists {
		return domain.AuthSession{}, ErrEmailInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		return domain.AuthSession{}, err
	}
	now := time.Now().UTC()
	user := domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      domain.RoleUser,
		FastagID:  req.FastagID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	mu := &mockUser{user: user, passwordHash: hash}
	s.users[email] = mu
	s.byID[user.ID] = mu
	if req.Phone != "" {
		s.byMobile[req.Phone] = mu
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("email", email))
	return s.openSessionLocked(user)
}

// SendOTP issues a one-time code to the given mobile number. In test mode
// no SMS leaves the process; VerifyOTP accepts the fixed bypass code.
func (s *AuthService) SendOTP(ctx context.Context, mobile string) error {
	if err := s.sleep(ctx); err != nil {
		return err
	}
	if !mobilePattern.MatchString(mobile) {
		return ErrInvalidNumber
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	recent := s.otpSends[mobile][:0]
	for _, t := range s.otpSends[mobile] {
		if now.Sub(t) < otpWindow {
			recent = append(recent, t)
		}
	}
	if len(recent) >= otpMaxSends {
		s.otpSends[mobile] = recent
		return ErrRateLimited
	}
	s.otpSends[mobile] = append(recent, now)
	s.logger.Info("otp sent", zap.String("mobile", mobile))
	return nil
}

// VerifyOTP checks the code and opens a session for the mobile's user,
// creating a minimal account on first login.
func (s *AuthService) VerifyOTP(ctx context.Context, mobile, code string) (domain.AuthSession, error) {
	if err := s.sleep(ctx); err != nil {
		return domain.AuthSession{}, err
	}
	if !mobilePattern.MatchString(mobile) {
		return domain.AuthSession{}, ErrInvalidNumber
	}
	if code != testOTP {
		return domain.AuthSession{}, ErrInvalidOTP
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	mu, ok := s.byMobile[mobile]
	if !ok {
		now := time.Now().UTC()
		user := domain.User{
			ID:         uuid.NewString(),
			Email:      mobile + "@mobile.smartpark",
			Phone:      mobile,
			Role:       domain.RoleUser,
			IsVerified: true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		mu = &mockUser{user: user}
		s.users[user.Email] = mu
		s.byID[user.ID] = mu
		s.byMobile[mobile] = mu
	}
	return s.openSessionLocked(mu.user)
}

// CurrentUser resolves an access token to its user.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (domain.User, error) {
	if err := s.sleep(ctx); err != nil {
		return domain.User{}, err
	}
	claims, err := s.tokens.ValidateAccess(token)
	if err != nil {
		return domain.User{}, ErrInvalidToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	mu, ok := s.byID[claims.UserID]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return mu.user, nil
}

// Refresh exchanges a refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.AuthSession, error) {
	if err := s.sleep(ctx); err != nil {
		return domain.AuthSession{}, err
	}
	claims, err := s.tokens.ValidateRefresh(refreshToken)
	if err != nil {
		return domain.AuthSession{}, ErrInvalidToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	mu, ok := s.byID[claims.UserID]
	if !ok {
		return domain.AuthSession{}, ErrUserNotFound
	}
	return s.openSessionLocked(mu.user)
}

// Logout is a no-op on the mocked backend beyond the simulated latency;
// token invalidation happens client-side by clearing persisted state.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.sleep(ctx)
}

func (s *AuthService) openSession(user domain.User) (domain.AuthSession, error) {
	access, refresh, err := s.tokens.Issue(user)
	if err != nil {
		return domain.AuthSession{}, err
	}
	return domain.AuthSession{User: user, Token: access, RefreshToken: refresh}, nil
}

// openSessionLocked exists so callers holding s.mu avoid re-locking; token
// issuance itself does not touch the tables.
func (s *AuthService) openSessionLocked(user domain.User) (domain.AuthSession, error) {
	return s.openSession(user)
}

// sleep simulates network latency while honoring cancellation.
func (s *AuthService) sleep(ctx context.Context) error {
	return simulateLatency(ctx, s.latency)
}

func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"smartpark/internal/domain"
)

// Claims is the JWT payload shared by access and refresh tokens.
type Claims struct {
	UserID    string          `json:"user_id"`
	Role      domain.UserRole `json:"role"`
	TokenKind string          `json:"kind"`
	jwt.RegisteredClaims
}

const (
	kindAccess  = "access"
	kindRefresh = "refresh"
)

// TokenService issues and validates HS256 JWTs for the mocked auth facade.
type TokenService struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewTokenService returns a configured token service.
func NewTokenService(secret string, accessExpiry, refreshExpiry time.Duration) *TokenService {
	if accessExpiry <= 0 {
		accessExpiry = time.Hour
	}
	if refreshExpiry <= 0 {
		refreshExpiry = 7 * 24 * time.Hour
	}
	return &TokenService{
		secret:        []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// Issue returns an access and a refresh token for the user.
func (t *TokenService) Issue(user domain.User) (access, refresh string, err error) {
	if user.ID == "" {
		return "", "", errors.New("token: user id is required")
	}
	access, err = t.sign(user, kindAccess, t.accessExpiry)
	if err != nil {
		return "", "", err
	}
	refresh, err = t.sign(user, kindRefresh, t.refreshExpiry)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (t *TokenService) sign(user domain.User, kind string, expiry time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID:    user.ID,
		Role:      user.Role,
		TokenKind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// ValidateAccess verifies an access token and returns its claims.
func (t *TokenService) ValidateAccess(token string) (*Claims, error) {
	return t.validate(token, kindAccess)
}

// ValidateRefresh verifies a refresh token and returns its claims.
func (t *TokenService) ValidateRefresh(token string) (*Claims, error) {
	return t.validate(token, kindRefresh)
}

func (t *TokenService) validate(tokenString, kind string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("token: unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("token: invalid claims")
	}
	if claims.TokenKind != kind {
		return nil, errors.New("token: wrong token kind")
	}
	return claims, nil
}

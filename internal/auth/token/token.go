package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired means the token was well-formed and correctly signed
	// but its expiry instant has passed.
	ErrExpired = errors.New("token expired")
	// ErrInvalid covers every other verification failure: malformed,
	// wrong signature, wrong signing method, missing subject.
	ErrInvalid = errors.New("token invalid")
)

const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

// Pair is one issued access/refresh token pair.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

// Service mints and verifies HS256 tokens. The user identifier is the
// sole claim (subject); access and refresh tokens are signed with
// independent secrets so one class can never stand in for the other.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte

	accessTTL  time.Duration
	refreshTTL time.Duration
}

func New(accessSecret, refreshSecret string) *Service {
	return &Service{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     AccessTTL,
		refreshTTL:    RefreshTTL,
	}
}

// Issue signs a new token pair for userID.
func (s *Service) Issue(userID string) (Pair, error) {
	access, err := sign(userID, s.accessSecret, s.accessTTL)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := sign(userID, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess returns the user identifier carried by a valid access
// token, ErrExpired past its expiry instant, ErrInvalid otherwise.
func (s *Service) VerifyAccess(tok string) (string, error) {
	return verify(tok, s.accessSecret)
}

// VerifyRefresh is VerifyAccess for refresh tokens.
func (s *Service) VerifyRefresh(tok string) (string, error) {
	return verify(tok, s.refreshSecret)
}

func sign(userID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func verify(tok string, secret []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", ErrInvalid
	}
	if claims.Subject == "" {
		return "", ErrInvalid
	}
	return claims.Subject, nil
}

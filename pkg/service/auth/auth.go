// Package auth issues and inspects the HS256 bearer tokens that protect the API.
package auth

import (
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/digitalbank/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token is missing, unparsable or lacks a subject.
	ErrInvalidToken = errors.New("invalid token")
	// ErrSubjectRequired is returned when generating a token without a subject.
	ErrSubjectRequired = errors.New("token subject is required")
)

// TokenService signs operator tokens with the configured secret.
type TokenService struct {
	cfg    *config.Jwt
	logger *slog.Logger
	now    func() time.Time
}

// NewTokenService creates a TokenService.
func NewTokenService(cfg *config.Jwt, logger *slog.Logger) *TokenService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenService{cfg: cfg, logger: logger, now: time.Now}
}

// Generate signs a token for subject that expires after the configured expiry.
func (s *TokenService) Generate(subject string) (string, error) {
	log := s.logger.With("subject", subject)
	log.Debug("GenerateToken called")
	if subject == "" {
		return "", ErrSubjectRequired
	}
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Expiry)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		log.Error("GenerateToken failed", "error", err)
		return "", err
	}
	log.Info("GenerateToken successful")
	return signed, nil
}

// Parse validates a signed token string and returns its subject.
func (s *TokenService) Parse(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return []byte(s.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}
	return SubjectFromToken(token)
}

// SubjectFromToken extracts the sub claim of a token already verified by the
// middleware.
func SubjectFromToken(token *jwt.Token) (string, error) {
	if token == nil {
		return "", ErrInvalidToken
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

// Package service issues and verifies the JWTs that carry a caller's account.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/goserg/hackathon/internal/config"
	"github.com/goserg/hackathon/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt"
)

var (
	ErrNotAuthorized = errors.New("unauthorized")
	ErrTokenExpired  = errors.New("token expired")
	ErrMalformed     = errors.New("malformed token")
)

type Service struct {
	cfg config.Server
}

func New(cfg config.Server) *Service {
	return &Service{cfg: cfg}
}

// Issue signs a token for account valid for the configured TTL.
func (s *Service) Issue(account domain.Account) (string, time.Time, error) {
	if account == "" {
		return "", time.Time{}, errors.New("empty account")
	}
	now := time.Now()
	expirationTime := now.Add(s.cfg.TokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		ExpiresAt: expirationTime.Unix(),
		IssuedAt:  now.Unix(),
		Subject:   account.String(),
	})
	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expirationTime, nil
}

func (s *Service) GenerateJWTCookie(account domain.Account) (*fiber.Cookie, error) {
	tokenString, expirationTime, err := s.Issue(account)
	if err != nil {
		return nil, err
	}
	return &fiber.Cookie{
		Name:     "token",
		Value:    tokenString,
		Path:     "/",
		Domain:   s.cfg.Host,
		Expires:  expirationTime,
		HTTPOnly: true,
	}, nil
}

// Auth returns the account a valid token was issued for.
func (s *Service) Auth(tokenString string) (domain.Account, error) {
	if tokenString == "" {
		return "", ErrNotAuthorized
	}
	token, err := jwt.ParseWithClaims(tokenString, &jwt.StandardClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err == nil && token.Valid {
		claims, ok := token.Claims.(*jwt.StandardClaims)
		if !ok || claims.Subject == "" {
			return "", ErrMalformed
		}
		return domain.Account(claims.Subject), nil
	}
	ve := &jwt.ValidationError{}
	if !errors.As(err, &ve) {
		return "", fmt.Errorf("%w: %v", ErrNotAuthorized, err)
	}
	switch {
	case ve.Errors&jwt.ValidationErrorMalformed != 0:
		return "", ErrMalformed
	case ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0:
		return "", ErrTokenExpired
	}
	return "", fmt.Errorf("%w: %v", ErrNotAuthorized, err)
}

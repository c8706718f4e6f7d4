package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTAuthorizer принимает HS256-токены, subject становится Principal.
type JWTAuthorizer struct {
	secret []byte
}

func NewJWTAuthorizer(secret string) (*JWTAuthorizer, error) {
	if secret == "" {
		return nil, errors.New("JWT secret is not set")
	}
	return &JWTAuthorizer{secret: []byte(secret)}, nil
}

func (a *JWTAuthorizer) Validate(ctx context.Context, tokenStr string) (Principal, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Проверка алгоритма
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return Principal{}, ErrUnauthorized
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return Principal{}, ErrUnauthorized
	}
	return Principal{Subject: sub}, nil
}

// NewToken выпускает токен для subject с заданным временем жизни.
func (a *JWTAuthorizer) NewToken(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

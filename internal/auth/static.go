package auth

import (
	"context"
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const staticSubject = "static-token"

// StaticTokenAuthorizer сравнивает токен с одним заданным значением.
// Значение может быть задано открытым текстом или bcrypt-хэшем.
type StaticTokenAuthorizer struct {
	token  []byte
	hashed bool
}

func NewStaticTokenAuthorizer(token string) *StaticTokenAuthorizer {
	return &StaticTokenAuthorizer{
		token:  []byte(token),
		hashed: isBcryptHash(token),
	}
}

func isBcryptHash(s string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func (a *StaticTokenAuthorizer) Validate(ctx context.Context, token string) (Principal, error) {
	// без настроенного токена доступ закрыт
	if len(a.token) == 0 || token == "" {
		return Principal{}, ErrUnauthorized
	}

	if a.hashed {
		if err := bcrypt.CompareHashAndPassword(a.token, []byte(token)); err != nil {
			return Principal{}, ErrUnauthorized
		}
		return Principal{Subject: staticSubject}, nil
	}

	if subtle.ConstantTimeCompare(a.token, []byte(token)) != 1 {
		return Principal{}, ErrUnauthorized
	}
	return Principal{Subject: staticSubject}, nil
}

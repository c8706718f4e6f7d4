package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/linemk/warehouse-facade/internal/auth"
	"github.com/linemk/warehouse-facade/internal/config"
)

// Выпускает JWT для фронтенда, когда сервис работает в режиме auth.mode=jwt.
// go run ./cmd/token --config=./config/local.yaml --subject=frontend --ttl=720h

func main() {
	var (
		subject string
		ttl     time.Duration
	)
	flag.String("config", "", "path to config file")
	flag.StringVar(&subject, "subject", "frontend", "token subject")
	flag.DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg := config.MustLoad()

	token, err := issueToken(cfg.Auth, subject, ttl)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}

func issueToken(cfg config.AuthConfig, subject string, ttl time.Duration) (string, error) {
	if cfg.Mode != "jwt" {
		return "", fmt.Errorf("auth mode is %q, tokens are issued only in jwt mode", cfg.Mode)
	}
	if subject == "" {
		return "", fmt.Errorf("subject is required")
	}
	a, err := auth.NewJWTAuthorizer(cfg.JWTSecret)
	if err != nil {
		return "", err
	}
	return a.NewToken(subject, ttl)
}

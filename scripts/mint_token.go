package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/meetinglens/meetinglens/pkg/config"
)

// Mints a bearer token for the API when AUTH_JWT_SECRET is set. Intended for
// local testing:
//
//	go run scripts/mint_token.go -sub dev-user -ttl 24h
func main() {
	sub := flag.String("sub", "dev-user", "subject claim for the token")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Auth.Secret == "" {
		log.Fatal("AUTH_JWT_SECRET is not set, nothing to sign with")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": *sub,
		"iat": now.Unix(),
		"exp": now.Add(*ttl).Unix(),
	})

	signed, err := token.SignedString([]byte(cfg.Auth.Secret))
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Println(signed)
}

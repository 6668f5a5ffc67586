// Command token mints HS256 bearer tokens accepted by the API when
// AUTH_PROVIDER=jwt.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"bookshelf/internal/config"
	"bookshelf/internal/identity"

	"github.com/rs/zerolog/log"
)

func main() {
	var (
		email = flag.String("email", "", "Email the token identifies")
		ttl   = flag.Duration("ttl", time.Hour, "Token lifetime")
	)
	flag.Parse()

	config.LoadEnvFiles()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}
	if *email == "" {
		log.Fatal().Msg("-email is required")
	}

	token, jti, err := identity.GenerateToken(secret, *email, *ttl)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot sign token")
	}
	log.Debug().Str("jti", jti).Str("email", *email).Dur("ttl", *ttl).Msg("token issued")
	fmt.Println(token)
}

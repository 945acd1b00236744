// Command admintoken mints a superuser JWT for local development, signed
// with JWT_SECRET from the environment or .env.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/raffle-ticket-sales/internal/middleware"
	"github.com/iliyamo/raffle-ticket-sales/internal/utils"
)

func main() {
	sub := flag.String("sub", "1", "subject (user id) claim")
	role := flag.String("role", middleware.RoleSuperuser, "role claim")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	env := flag.String("env", ".env", "dotenv file to read first")
	flag.Parse()

	if err := godotenv.Load(*env); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("could not read env file")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	tok, err := utils.NewAccessToken(secret, *sub, *role, *ttl)
	if err != nil {
		log.WithError(err).Fatal("sign token")
	}
	fmt.Println(tok.Token)
	fmt.Fprintf(os.Stderr, "expires %s\n", tok.Exp.Format(time.RFC3339))
}

// Command token mints a bearer token for the write endpoints (POST /symbols),
// or prints a bcrypt hash for ADMIN_PASSWORD_HASH.
//
//	token [-subject admin] [-ttl 24h]
//	token -hash-password 'secret'
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	authusecase "stock_valuation/internal/feature/auth/usecase"
	jwtmw "stock_valuation/internal/platform/jwt"
)

func main() {
	_ = godotenv.Load()

	subject := flag.String("subject", "admin", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	password := flag.String("hash-password", "", "print the bcrypt hash of this password and exit")
	flag.Parse()

	if *password != "" {
		hash, err := authusecase.HashPassword(*password)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	token, err := jwtmw.NewGenerator(jwtmw.SecretFromEnv(), *ttl).GenerateToken(*subject, jwtmw.RoleAdmin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v (set %s)\n", err, jwtmw.EnvKeyJWTSecret)
		os.Exit(1)
	}
	fmt.Println(token)
}

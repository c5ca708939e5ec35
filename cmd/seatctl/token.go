package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/kirinyoku/seatkeeper/internal/auth"
)

func tokenCommand() *command {
	c := &command{
		name:        "token",
		description: "Issue an API access token, signed with JWT_SECRET",
		usage:       "seatctl token -user <uuid> [-role admin] [-ttl 12h]",
	}

	c.run = func(args []string) error {
		_ = godotenv.Load()

		fs := c.flagSet()
		user := fs.String("user", "", "user ID the token is issued to")
		role := fs.String("role", string(auth.RoleUser), "user or admin")
		ttl := fs.Duration("ttl", 12*time.Hour, "token lifetime")
		if err := fs.Parse(args); err != nil {
			return err
		}

		userID, err := uuid.Parse(*user)
		if err != nil {
			fs.Usage()
			return fmt.Errorf("invalid -user: %w", err)
		}

		switch auth.Role(*role) {
		case auth.RoleUser, auth.RoleAdmin:
		default:
			return fmt.Errorf("invalid -role %q", *role)
		}

		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			return fmt.Errorf("JWT_SECRET is not set")
		}

		raw, err := auth.Issue([]byte(secret), userID, auth.Role(*role), *ttl)
		if err != nil {
			return err
		}

		fmt.Println(raw)
		return nil
	}

	return c
}

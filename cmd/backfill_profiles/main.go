// backfill_profiles patches missing portfolio fields across all accounts
// in one batch. It is the explicit-migration counterpart of the
// best-effort patch the login path applies per account.
package main

import (
	"fmt"
	"os"
	"strings"

	"foliohub/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		fmt.Fprintln(os.Stderr, "DB_DSN not set in environment")
		os.Exit(1)
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open db:", err)
		os.Exit(1)
	}

	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		fmt.Fprintln(os.Stderr, "failed to list accounts:", err)
		os.Exit(1)
	}

	patched := 0
	for i := range users {
		u := &users[i]
		updates := map[string]any{}
		if u.Portfolio.FullName == "" {
			updates["portfolio_full_name"] = u.Username
		}
		if u.Portfolio.ContactEmail == "" {
			updates["portfolio_contact_email"] = u.Email
		}
		if len(updates) == 0 {
			continue
		}
		if err := db.Model(u).Updates(updates).Error; err != nil {
			fmt.Fprintf(os.Stderr, "backfill failed for %s: %v\n", u.Username, err)
			continue
		}
		patched++
	}
	fmt.Printf("backfilled %d of %d accounts\n", patched, len(users))
}

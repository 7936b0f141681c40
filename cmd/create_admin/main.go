package main

import (
	"fmt"
	"os"
	"strings"

	"foliohub/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Println("usage: go run ./cmd/create_admin <username> <email> <password>")
		os.Exit(2)
	}
	username := strings.ToLower(os.Args[1])
	email := strings.ToLower(os.Args[2])
	password := os.Args[3]

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

	var existing models.User
	if err := db.Where("username = ? OR email = ?", username, email).First(&existing).Error; err == nil {
		fmt.Printf("account %s already exists (id=%d)\n", existing.Username, existing.ID)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bcrypt failed:", err)
		os.Exit(1)
	}
	u := models.User{
		Username:       username,
		Email:          email,
		HashedPassword: hash,
		Role:           models.RoleAdmin,
		Portfolio: models.Portfolio{
			FullName:     username,
			ContactEmail: email,
			IsPublic:     true,
		},
	}
	if err := db.Create(&u).Error; err != nil {
		fmt.Fprintln(os.Stderr, "failed to create account:", err)
		os.Exit(1)
	}
	fmt.Printf("created account %s id=%d\n", username, u.ID)
}

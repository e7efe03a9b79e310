package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sjperalta/edufees-api/internal/config"
	"github.com/sjperalta/edufees-api/internal/middleware"
	"github.com/sjperalta/edufees-api/internal/models"
)

// mint_token prints a signed JWT for calling the API locally
func main() {
	contactID := flag.String("contact", "", "student contact ID")
	name := flag.String("name", "", "student name")
	email := flag.String("email", "", "email address")
	role := flag.String("role", models.RoleStudent, "role: student, staff or admin")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	switch *role {
	case models.RoleStudent, models.RoleStaff, models.RoleAdmin:
	default:
		log.Fatalf("Unknown role %q", *role)
	}
	if *role == models.RoleStudent && *contactID == "" {
		log.Fatal("-contact is required for student tokens")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	token, err := middleware.GenerateToken(cfg.JWTSecret, middleware.Claims{
		ContactID: *contactID,
		Name:      *name,
		Email:     *email,
		Role:      *role,
	}, *ttl)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Println(token)
}

package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/velure-shop/velure-backend-go/models"
)

// LoadEnv loads environment variables from a .env file
func LoadEnv() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Error loading .env file")
	}
}

// GetEnv retrieves environment variables with a fallback
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// AdminEmails parses the ADMIN_EMAILS allowlist (comma-separated, case
// insensitive). The list is injected into role resolution rather than being
// a compile-time constant so deployments can change it without a rebuild.
func AdminEmails() []string {
	raw := GetEnv("ADMIN_EMAILS", "")
	if raw == "" {
		return nil
	}

	var emails []string
	for _, e := range strings.Split(raw, ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			emails = append(emails, e)
		}
	}
	return emails
}

// RoleForEmail resolves a user's role against the injected allowlist.
func RoleForEmail(email string, allowlist []string) models.Role {
	normalized := strings.ToLower(strings.TrimSpace(email))
	for _, admin := range allowlist {
		if normalized == admin {
			return models.RoleAdmin
		}
	}
	return models.RoleCustomer
}

package database

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pos-backend/config"
	"pos-backend/internal/models"
)

// SeedAdmin makes sure an admin user exists so the protected routes are
// reachable on a fresh database. No-op when ADMIN_PHONE is not configured.
func SeedAdmin() {
	defaults := config.AppConfig.Defaults
	if defaults.AdminPhone == "" {
		log.Println("ADMIN_PHONE not set, skipping admin seed")
		return
	}

	var admin models.User
	err := DB.Where("phone = ?", defaults.AdminPhone).First(&admin).Error
	if err == nil {
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("Failed to check for admin user: %v", err)
		return
	}

	admin = models.User{
		UserID: "USR-" + uuid.NewString(),
		Name:   defaults.AdminName,
		Email:  defaults.AdminEmail,
		Phone:  defaults.AdminPhone,
		Roles:  models.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Failed to seed admin user: %v", err)
		return
	}
	log.Println("Admin user seeded successfully.")
}

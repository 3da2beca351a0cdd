package config

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/webdrave/funds-backend/internal/adapters/persistence/models"
	"github.com/webdrave/funds-backend/internal/core/domain"
	"github.com/webdrave/funds-backend/internal/pkg/password"
)

// SeedSuperadmin creates the bootstrap superadmin account if no account
// with the configured email exists yet.
func SeedSuperadmin(db *gorm.DB, cfg *Config) error {
	var existing models.Admin
	err := db.Where("email = ?", cfg.Seed.SuperadminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := password.Hash(cfg.Seed.SuperadminPassword)
	if err != nil {
		return err
	}

	admin := &models.Admin{
		Name:     "Superadmin",
		Email:    cfg.Seed.SuperadminEmail,
		Password: hashed,
		Role:     string(domain.RoleSuperadmin),
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded superadmin account [%s]", admin.Email)
	return nil
}

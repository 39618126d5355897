package database

import (
	"go.uber.org/zap"

	"github.com/Alchinkaz/dream-rent-crm-new/utils"
)

// RunMigrations runs all database migrations
func RunMigrations() error {
	zap.L().Info("running database migrations")

	// AutoMigrate will create tables if they don't exist
	if err := DB.AutoMigrate(
		&Company{},
		&User{},
		&Client{},
		&Vehicle{},
		&Rental{},
		&Payment{},
		&RentalHistory{},
		&Notification{},
	); err != nil {
		zap.L().Error("migration failed", zap.Error(err))
		return err
	}

	zap.L().Info("database migrations completed")
	return nil
}

// SeedCompanies creates the static company list if missing. Companies are
// configuration, not user data, so this runs on every boot.
func SeedCompanies() error {
	companies := []Company{
		{ID: "cars", Name: "KazDream Cars", Email: "info@dreamrent.kz", FleetType: "cars"},
		{ID: "scoots", Name: "KazDream Scoots", Email: "info@dreamrent.kz", FleetType: "scoots"},
		{ID: "moto", Name: "KazDream Moto", Email: "info@dreamrent.kz", FleetType: "moto"},
	}

	for _, company := range companies {
		var count int64
		if err := DB.Model(&Company{}).Where("id = ?", company.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := DB.Create(&company).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedDefaultAdmin creates a default admin if none exists
func SeedDefaultAdmin() {
	var count int64
	if err := DB.Model(&User{}).Where("role = ?", RoleAdmin).Count(&count).Error; err != nil {
		zap.L().Error("failed to check existing admin", zap.Error(err))
		return
	}

	if count == 0 {
		hash, err := utils.HashPassword("admin123")
		if err != nil {
			zap.L().Error("failed to hash default admin password", zap.Error(err))
			return
		}

		admin := User{
			Name:         "Admin",
			Email:        "info@dreamrent.kz",
			PasswordHash: hash,
			Role:         RoleAdmin,
			AvatarURL:    "https://ui-avatars.com/api/?name=Admin&background=0a0a0a&color=fff&bold=true",
		}

		if err := DB.Create(&admin).Error; err != nil {
			zap.L().Error("failed to create default admin", zap.Error(err))
		} else {
			zap.L().Info("default admin user created")
		}
	}
}

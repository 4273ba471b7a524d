package bootstrap

import (
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"anoa.com/marketplace/internal/entity"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Credential{},
		&entity.BuyerProfile{},
		&entity.SellerProfile{},
		&entity.Product{},
		&entity.CartLine{},
		&entity.Order{},
		&entity.Review{},
		&entity.Complaint{},
	)
}

// SeedAdminUser creates the development admin once.
func SeedAdminUser(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&entity.Credential{}).
		Where("username = ?", "admin").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Debug("admin user already exists, skipping seed")
		return nil
	}

	password := "admin123"
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := entity.Credential{
		Username:     "admin",
		PasswordHash: string(hashedPasswordBytes),
		Role:         entity.RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Info("admin user seeded", zap.String("username", admin.Username), zap.String("password", password))
	return nil
}

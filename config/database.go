package config

import (
	"strings"

	"school-meals-api/models"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB opens the sqlite database at dsn and migrates all models.
func InitDB(dsn string) {
	var err error
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		Log.WithError(err).Fatal("Failed to connect to database")
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.School{},
		&models.Delivery{},
		&models.Attendance{},
		&models.Learner{},
		&models.GroceryItem{},
	)
	if err != nil {
		Log.WithError(err).Fatal("Failed to migrate database")
	}

	Log.Info("Database connected and migrated")
}

// SeedDefaultAccounts creates one account per role on an empty user table so
// a fresh install can be logged into. Passwords come from env; only the
// emails are logged.
func SeedDefaultAccounts() {
	if strings.EqualFold(getEnv("SEED_DEFAULT_ACCOUNTS", "true"), "false") {
		return
	}

	var count int64
	DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []struct {
		name, email, passEnv, fallback string
		role                           models.UserRole
	}{
		{"Administrator", "admin@schoolmeals.local", "SEED_ADMIN_PASSWORD", "admin123", models.RoleAdmin},
		{"Default Cooker", "cooker@schoolmeals.local", "SEED_COOKER_PASSWORD", "cook123", models.RoleCooker},
		{"Default Driver", "delivery@schoolmeals.local", "SEED_DELIVERY_PASSWORD", "deliver123", models.RoleDelivery},
	}

	for _, d := range defaults {
		hash, err := bcrypt.GenerateFromPassword([]byte(getEnv(d.passEnv, d.fallback)), bcrypt.DefaultCost)
		if err != nil {
			Log.WithError(err).Fatal("Failed to hash seed password")
		}
		user := models.User{
			Name:         d.name,
			Email:        d.email,
			PasswordHash: string(hash),
			Role:         d.role,
		}
		if err := DB.Create(&user).Error; err != nil {
			Log.WithError(err).WithField("email", d.email).Error("Failed to seed account")
			continue
		}
		Log.WithFields(logrus.Fields{"email": d.email, "role": d.role}).Info("Seeded default account")
	}
}

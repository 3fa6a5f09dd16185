package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/quirodesk/clinica-api/internal/config"
	"github.com/quirodesk/clinica-api/internal/domain/entity"
	"github.com/quirodesk/clinica-api/internal/domain/enum"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Account entities
		&entity.User{},
		&entity.PasswordResetToken{},

		// Clinic entities
		&entity.Clinic{},
		&entity.Practitioner{},
		&entity.Patient{},

		// Catalog
		&entity.Product{},

		// Billing entities
		&entity.Receipt{},
		&entity.ReceiptDetail{},
		&entity.ReceiptPayment{},
		&entity.CarePlan{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with a default clinic, practitioner,
// catalog entries and the admin account configured via environment variables.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Default clinic branch
	var clinic entity.Clinic
	if err := db.First(&clinic).Error; err != nil {
		address := viper.GetString("CLINIC_ADDRESS")
		phone := viper.GetString("CLINIC_PHONE")
		clinic = entity.Clinic{Name: viper.GetString("CLINIC_NAME")}
		if clinic.Name == "" {
			clinic.Name = "QuiroDesk"
		}
		if address != "" {
			clinic.Address = &address
		}
		if phone != "" {
			clinic.Phone = &phone
		}
		if err := db.Create(&clinic).Error; err != nil {
			log.Printf("Warning: failed to create default clinic: %v", err)
		}
	}

	// Default practitioner attached to the clinic
	var practitioner entity.Practitioner
	if err := db.First(&practitioner).Error; err != nil {
		name := viper.GetString("PRACTITIONER_NAME")
		if name == "" {
			name = "Dr. Quiropractico"
		}
		practitioner = entity.Practitioner{Name: name, ClinicID: &clinic.ID}
		if err := db.Create(&practitioner).Error; err != nil {
			log.Printf("Warning: failed to create default practitioner: %v", err)
		}
	}

	// Baseline catalog: a consultation service so receipts can be issued
	// from a fresh install.
	var consulta entity.Product
	if err := db.Where("nombre = ?", "Consulta").First(&consulta).Error; err != nil {
		consulta = entity.Product{
			Name:      "Consulta",
			SalePrice: 500,
			Kind:      enum.ProductKindService,
			Active:    true,
		}
		if err := db.Create(&consulta).Error; err != nil {
			log.Printf("Warning: failed to create default product: %v", err)
		}
	}

	// Create admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Administrador"
				}
				adminUser := entity.User{
					ID:       uuid.New(),
					Name:     adminName,
					Email:    adminEmail,
					Password: string(hashedPassword),
					Role:     enum.UserRoleAdmin,
					Provider: "local",
				}
				if err := db.Create(&adminUser).Error; err != nil {
					log.Printf("Warning: failed to create admin user: %v", err)
				} else {
					log.Printf("Admin user created: %s", adminEmail)
				}
			}
		} else {
			log.Printf("Admin user already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}

// internal/database/connection.go
package database

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shopwave/ecommerce-backend/internal/config"
	"github.com/shopwave/ecommerce-backend/internal/models"
)

var DB *gorm.DB

var gormLogLevels = map[string]logger.LogLevel{
	"silent": logger.Silent,
	"error":  logger.Error,
	"warn":   logger.Warn,
	"info":   logger.Info,
}

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	level, ok := gormLogLevels[cfg.LogLevel]
	if !ok {
		level = logger.Warn
	}

	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.MaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	DB = db
	logrus.Info("Database connection established successfully")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
	} else {
		logrus.Info("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	// gen_random_uuid() lives in pgcrypto before Postgres 13.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return fmt.Errorf("failed to create pgcrypto extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.FeatureImage{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Catalog
		"CREATE INDEX IF NOT EXISTS idx_products_category_brand ON products(category, brand)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_products_title ON products(title)",
		"CREATE INDEX IF NOT EXISTS idx_products_search ON products USING GIN(to_tsvector('english', title || ' ' || coalesce(description, '')))",

		// Orders
		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product_order ON order_items(product_id, order_id)",

		// Reviews
		"CREATE INDEX IF NOT EXISTS idx_reviews_product_created ON reviews(product_id, created_at DESC)",

		// Feature images
		"CREATE INDEX IF NOT EXISTS idx_feature_images_created ON feature_images(created_at DESC)",

		// Audit
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_resource ON audit_logs(resource_type, resource_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			logrus.WithError(err).WithField("statement", index).Warn("Failed to create index")
		}
	}

	return nil
}

// SeedInitialData creates the configured admin account and, optionally, a sample catalog.
func SeedInitialData(db *gorm.DB, cfg config.SeedConfig) error {
	logrus.Info("Seeding initial data...")

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		var count int64
		if err := db.Model(&models.User{}).Where("email = ?", cfg.AdminEmail).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check admin user: %w", err)
		}

		if count == 0 {
			admin := &models.User{
				UserName: cfg.AdminUserName,
				Email:    cfg.AdminEmail,
				Role:     models.UserRoleAdmin,
			}
			if err := admin.SetPassword(cfg.AdminPassword); err != nil {
				return fmt.Errorf("failed to set admin password: %w", err)
			}
			if err := db.Create(admin).Error; err != nil {
				return fmt.Errorf("failed to create admin user: %w", err)
			}
			logrus.WithField("email", admin.Email).Info("Admin user created")
		}
	}

	if cfg.SampleProducts {
		if err := seedSampleProducts(db); err != nil {
			return err
		}
	}

	logrus.Info("Initial data seeding completed")
	return nil
}

func seedSampleProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	samples := []models.Product{
		{Title: "Classic Cotton Tee", Description: "Everyday crew neck t-shirt", Category: "men", Brand: "nike",
			Price: decimal.NewFromInt(799), SalePrice: decimal.NewFromInt(599), TotalStock: 120},
		{Title: "Running Shoes", Description: "Lightweight road running shoes", Category: "footwear", Brand: "adidas",
			Price: decimal.NewFromInt(4999), TotalStock: 40},
		{Title: "Summer Dress", Description: "Floral midi dress", Category: "women", Brand: "zara",
			Price: decimal.NewFromInt(2499), SalePrice: decimal.NewFromInt(1999), TotalStock: 25},
		{Title: "Kids Hoodie", Description: "Fleece-lined hoodie", Category: "kids", Brand: "h&m",
			Price: decimal.NewFromInt(1299), TotalStock: 60},
		{Title: "Leather Wallet", Description: "Bi-fold genuine leather wallet", Category: "accessories", Brand: "levi",
			Price: decimal.NewFromInt(1499), TotalStock: 80},
	}

	if err := db.Create(&samples).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}
	logrus.WithField("count", len(samples)).Info("Sample products created")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// Command seed fills a development database with an admin account and a
// small catalog.
package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/ggorockee/storefront/internal/config"
	"github.com/ggorockee/storefront/internal/database"
	"github.com/ggorockee/storefront/internal/logger"
	"github.com/ggorockee/storefront/internal/models"
	"github.com/ggorockee/storefront/internal/services"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	adminEmail := flag.String("admin-email", "admin@storefront.local", "admin account email")
	adminPassword := flag.String("admin-password", "admin1234", "admin account password")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	_ = logger.Init(cfg.LogLevel)
	defer logger.Sync()
	log := logger.Named("seed")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal("connect", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	if err := seed(ctx, db, cfg, *adminEmail, *adminPassword); err != nil {
		log.Fatal("seed", zap.Error(err))
	}
	log.Info("seed complete", zap.String("admin", *adminEmail))
}

func seed(ctx context.Context, db *database.DB, cfg *config.Config, email, password string) error {
	authService := services.NewAuthService(db, cfg)

	var existing models.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if _, err := authService.CreateUser(ctx, email, "Admin", password, models.RoleAdmin); err != nil {
			return err
		}
	case err != nil:
		return err
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		snacksDesc := "Salty snacks"
		snacks := models.Category{Name: "Snacks", Description: &snacksDesc}
		drinks := models.Category{Name: "Drinks"}
		if err := tx.Create(&snacks).Error; err != nil {
			return err
		}
		if err := tx.Create(&drinks).Error; err != nil {
			return err
		}

		img := "/img/chips.png"
		products := []models.Product{
			{Name: "Potato Chips", Price: 2.5, Stock: 40, CategoryID: snacks.ID, ImageURL: &img},
			{Name: "Pretzels", Price: 3.0, Stock: 25, CategoryID: snacks.ID},
			{Name: "Cola", Price: 1.8, Stock: 60, CategoryID: drinks.ID},
			{Name: "Sparkling Water", Price: 1.2, Stock: 80, CategoryID: drinks.ID},
		}
		for i := range products {
			if err := tx.Create(&products[i]).Error; err != nil {
				return err
			}
		}

		zones := []models.DeliveryZone{
			{City: "Seoul", Fee: 3000, EstimatedDays: "1-2", IsActive: true},
			{City: "Busan", Fee: 4000, EstimatedDays: "2-3", IsActive: true},
			{City: "Incheon", Fee: 3000, EstimatedDays: "1-2", IsActive: true},
		}
		return tx.Create(&zones).Error
	})
}

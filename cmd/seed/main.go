// Seed inserts the launch catalog into an empty database. Safe to re-run:
// products already present (matched by slug) are skipped.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/sujatha-boutique/storefront/internal/catalog/domain"
	"github.com/sujatha-boutique/storefront/internal/catalog/repository"
	"github.com/sujatha-boutique/storefront/pkg/database"
	"github.com/sujatha-boutique/storefront/pkg/logger"
)

func main() {
	logger.Init("storefront-seed", true)

	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "storefront"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	repo := repository.NewGormProductRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	ctx := context.Background()
	seeded, skipped := 0, 0
	for _, p := range launchCatalog() {
		if _, err := repo.FindBySlug(ctx, p.Slug); err == nil {
			skipped++
			continue
		} else if !errors.Is(err, domain.ErrProductNotFound) {
			logger.Logger.Fatal().Err(err).Msg("Failed to check existing product")
		}

		product := p
		if err := repo.Create(ctx, &product); err != nil {
			logger.Logger.Fatal().Err(err).Str("name", p.Name).Msg("Failed to seed product")
		}
		seeded++
	}

	logger.Logger.Info().Int("seeded", seeded).Int("skipped", skipped).Msg("Seed complete")
}

func launchCatalog() []domain.Product {
	products := []domain.Product{
		{
			Name:        "Classic Silk Blouse",
			Price:       49.00,
			Category:    "Blouses",
			Description: "Lightweight pure silk blouse with hand-finished seams",
			Images:      []string{"classic-silk-blouse.jpg"},
			Tags:        []string{"silk", "classic", "everyday"},
			Featured:    true,
		},
		{
			Name:        "Kanjivaram Bridal Saree",
			Price:       560.00,
			Category:    "Bridal",
			Description: "Handwoven Kanjivaram saree with gold zari border",
			Images:      []string{"kanjivaram-bridal-saree.jpg"},
			Tags:        []string{"saree", "kanjivaram", "wedding"},
			Featured:    true,
		},
		{
			Name:        "Festive Embroidered Anarkali",
			Price:       185.00,
			Category:    "Festive",
			Description: "Floor-length anarkali with mirror-work embroidery",
			Images:      []string{"festive-anarkali.jpg"},
			Tags:        []string{"anarkali", "festive", "embroidery"},
		},
		{
			Name:        "Georgette Summer Blouse",
			Price:       32.00,
			Category:    "New Arrivals",
			Description: "Breezy georgette blouse in pastel shades",
			Images:      []string{"georgette-summer-blouse.jpg"},
			Tags:        []string{"georgette", "summer", "new"},
		},
	}

	for i := range products {
		products[i].Slug = domain.Slugify(products[i].Name)
	}
	return products
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"pixelcraft/internal/database"
	"pixelcraft/internal/domain"
	"pixelcraft/internal/repository"
)

// Seeds the services catalog. Safe to re-run: entries are upserted by slug.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "pixelcraft.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	if err := repository.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	services := []domain.Service{
		{Slug: "web-development", Name: "Web Development", Description: "Custom marketing sites, landing pages and web apps.", Active: true},
		{Slug: "photography", Name: "Photography", Description: "Product, brand and event photography.", Active: true},
		{Slug: "video-production", Name: "Video Production", Description: "Promo videos, ads and social cuts.", Active: true},
		{Slug: "branding", Name: "Branding & Identity", Description: "Logos, brand guidelines and visual identity.", Active: true},
		{Slug: "content-marketing", Name: "Content Marketing", Description: "Copywriting, blogs and campaign content.", Active: true},
		{Slug: "seo", Name: "SEO & Analytics", Description: "Search optimization and performance reporting.", Active: true},
	}

	repo := repository.NewServiceRepository(db)
	ctx := context.Background()
	for i := range services {
		if err := repo.UpsertBySlug(ctx, &services[i]); err != nil {
			log.Fatalf("seed %s failed: %v", services[i].Slug, err)
		}
		log.Println("seeded service:", services[i].Slug)
	}

	log.Println("done")
}

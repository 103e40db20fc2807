package main

import (
	"log"
	"os"

	"titlerate/backend/internal/config"
	"titlerate/backend/internal/entity"
	"titlerate/backend/internal/server"
	"titlerate/backend/pkg/database"
	"titlerate/backend/pkg/mailer"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := seedSuperuser(db); err != nil {
			log.Fatalf("failed to seed superuser: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		log.Println("REDIS_URL not set, rate limiting disabled")
	}

	sink := mailer.NewSMTPSink(mailer.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.MailFrom,
	})

	srv := server.NewServer(db, redisClient, cfg, sink)

	log.Printf("listening on :%s", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Category{},
		&entity.Genre{},
		&entity.Title{},
		&entity.Review{},
		&entity.Comment{},
	)
}

// seedSuperuser creates a bootstrap admin for local development so the
// first token can be obtained without touching the database by hand.
func seedSuperuser(db *gorm.DB) error {
	username := os.Getenv("SUPERUSER_USERNAME")
	if username == "" {
		username = "admin"
	}
	email := os.Getenv("SUPERUSER_EMAIL")
	if email == "" {
		email = "admin@titlerate.local"
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	superuser := &entity.User{
		Username:    username,
		Email:       email,
		Role:        entity.RoleAdmin,
		IsSuperuser: true,
	}
	if err := db.Create(superuser).Error; err != nil {
		return err
	}

	log.Printf("seeded development superuser %q", username)
	return nil
}

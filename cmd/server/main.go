package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/openlearn/course-library/internal/config"
	"github.com/openlearn/course-library/internal/entity"
	"github.com/openlearn/course-library/internal/server"
	"github.com/openlearn/course-library/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := seedProfessor(db); err != nil {
			log.Fatalf("failed to seed professor account: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			// Rate limiting degrades to no-op without redis.
			log.Printf("redis unreachable, continuing without rate limiting: %v", err)
			redisClient = nil
		}
	}

	srv := server.New(cfg, db, redisClient)

	log.Printf("listening on :%s", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Course{},
		&entity.Resource{},
		&entity.Comment{},
	)
}

// seedProfessor creates a known professor account for local development.
func seedProfessor(db *gorm.DB) error {
	const seedEmail = "professor@example.com"

	var count int64
	if err := db.Model(&entity.User{}).
		Where("email = ?", seedEmail).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Seed professor already exists, skipping")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("professor123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	professor := entity.User{
		Email:        seedEmail,
		PasswordHash: string(hashed),
		Name:         "Seed Professor",
		Role:         entity.RoleProfessor,
	}

	if err := db.Create(&professor).Error; err != nil {
		return err
	}

	log.Println("Seed professor created")
	log.Println("   Email: " + seedEmail)
	log.Println("   Password: professor123")

	return nil
}

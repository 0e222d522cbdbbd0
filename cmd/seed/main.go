package main

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"inkwell/internal/config"
	"inkwell/internal/credentials"
	"inkwell/internal/db"
	"inkwell/internal/model"
	"inkwell/internal/repository"
)

const (
	demoUsername = "demo"
	demoPassword = "demo1234"
)

var demoPosts = []model.Post{
	{Title: "Hello, Inkwell", Content: "This is the first seeded post."},
	{Title: "Second post", Content: "Seeded content for local development."},
}

// Seed bootstraps the schema and a demo account outside the request path.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Post{}, &model.Expense{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)

	if err := seedUser(ctx, userRepo); err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}

	created, err := seedPosts(ctx, postRepo, gormDB)
	if err != nil {
		log.Fatalf("Failed to seed posts: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Demo user: %s / %s", demoUsername, demoPassword)
	log.Printf("  - New posts created: %d", created)
}

func seedUser(ctx context.Context, users repository.UserRepository) error {
	existing, err := users.FindByUsername(ctx, demoUsername)
	if err == nil && existing != nil {
		log.Printf("Demo user %q already exists, skipping", demoUsername)
		return nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := credentials.Hash(demoPassword)
	if err != nil {
		return err
	}
	return users.Create(ctx, &model.User{
		Username:     demoUsername,
		PasswordHash: hash,
		FullName:     "Demo User",
	})
}

func seedPosts(ctx context.Context, posts repository.PostRepository, gormDB *gorm.DB) (int, error) {
	var count int64
	if err := gormDB.WithContext(ctx).Model(&model.Post{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		log.Printf("Posts already present (%d), skipping", count)
		return 0, nil
	}

	created := 0
	for i := range demoPosts {
		if err := posts.Create(ctx, &demoPosts[i]); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

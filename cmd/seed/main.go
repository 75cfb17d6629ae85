package main

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/CWN221/Flask-To-Do-List/internal/config"
	"github.com/CWN221/Flask-To-Do-List/internal/db"
	"github.com/CWN221/Flask-To-Do-List/internal/model"
	"github.com/CWN221/Flask-To-Do-List/internal/repository"
)

const (
	demoUsername = "demo"
	demoEmail    = "demo@example.com"
	demoPassword = "password123"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewSQLite(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	log.Printf("Opened database at %s", cfg.DatabasePath)

	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	created, err := seedDemoUser(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}
	if created {
		log.Printf("Created demo user %q (%s)", demoUsername, demoEmail)
	} else {
		log.Printf("Demo user %q already present, skipping", demoUsername)
	}

	inserted, err := seedSampleTasks(ctx, taskRepo)
	if err != nil {
		log.Fatalf("Failed to seed tasks: %v", err)
	}
	if inserted == 0 {
		log.Println("Tasks already present, skipping samples")
	} else {
		log.Printf("Inserted %d sample tasks", inserted)
	}

	log.Println("Seed completed successfully!")
}

// seedDemoUser creates the demo account unless it already exists.
func seedDemoUser(ctx context.Context, repo repository.UserRepository) (bool, error) {
	_, err := repo.FindByUsername(ctx, demoUsername)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
	if err != nil {
		return false, err
	}

	user := &model.User{
		Username: demoUsername,
		Email:    demoEmail,
		Password: string(hashed),
	}
	if err := repo.Create(ctx, user); err != nil {
		return false, err
	}
	return true, nil
}

// seedSampleTasks inserts a handful of tasks when the table is empty.
func seedSampleTasks(ctx context.Context, repo repository.TaskRepository) (int, error) {
	existing, err := repo.ListByCreatedDesc(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	due := time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour)
	samples := []model.Task{
		{Title: "Buy milk", Priority: "High", DueDate: &due},
		{Title: "Water the plants", Priority: "Low"},
		{Title: "File the expense report", Priority: "Medium"},
	}

	for i := range samples {
		if err := repo.Create(ctx, &samples[i]); err != nil {
			return i, err
		}
	}
	return len(samples), nil
}

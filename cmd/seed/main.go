package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/oksasatya/go-talent-marketplace/config"
	"github.com/oksasatya/go-talent-marketplace/internal/application"
	"github.com/oksasatya/go-talent-marketplace/internal/container"
	"github.com/oksasatya/go-talent-marketplace/internal/domain/repository"
	pginfra "github.com/oksasatya/go-talent-marketplace/internal/infrastructure/postgres"
	"github.com/oksasatya/go-talent-marketplace/pkg/apperror"
	"github.com/oksasatya/go-talent-marketplace/pkg/helpers"
)

const demoPassword = "password123"

// seeds a demo client and a demo talent with a profile; safe to run repeatedly
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLoggerWithLevel(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	c := container.New(cfg, logger)
	c.UsePostgres(pool)
	svc := c.Services()

	clientID, err := ensureUser(ctx, c, svc.Users, "Demo Client", "client@example.com")
	if err != nil {
		logger.Fatalf("failed to seed client: %v", err)
	}
	talentID, err := ensureUser(ctx, c, svc.Users, "Demo Talent", "talent@example.com")
	if err != nil {
		logger.Fatalf("failed to seed talent: %v", err)
	}

	rate := 45.0
	_, err = svc.Profiles.Create(ctx, talentID, application.CreateProfileInput{
		Skills:          []string{"Go", "PostgreSQL", "Kubernetes"},
		Portfolio:       "https://example.com/demo-talent",
		Availability:    "Freelance",
		HourlyRate:      &rate,
		ExperienceLevel: "Senior",
		Bio:             "Backend engineer building APIs and data pipelines.",
	})
	if err != nil && !apperror.Is(err, apperror.Conflict) {
		logger.Fatalf("failed to seed profile: %v", err)
	}

	fmt.Printf("seeded client: id=%s email=client@example.com password=%s\n", clientID, demoPassword)
	fmt.Printf("seeded talent: id=%s email=talent@example.com password=%s\n", talentID, demoPassword)
}

func ensureUser(ctx context.Context, c *container.Container, users *application.UserService, name, email string) (string, error) {
	existing, err := c.Users.GetByEmail(ctx, email)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}
	u, err := users.Register(ctx, application.RegisterInput{Name: name, Email: email, Password: demoPassword})
	if err != nil {
		return "", err
	}
	return u.ID, nil
}

// Command seed provisions an initial admin account and, optionally, a sample
// product catalog. Run it once against a fresh environment.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/akrgroup/backoffice/internal/config"
	"github.com/akrgroup/backoffice/internal/data/mongo"
	"github.com/akrgroup/backoffice/internal/data/postgres"
	"github.com/akrgroup/backoffice/internal/domain/admin"
	"github.com/akrgroup/backoffice/internal/domain/catalog"
	"github.com/akrgroup/backoffice/internal/logger"
	"github.com/akrgroup/backoffice/internal/platform/persistence"
)

func main() {
	var (
		email       = flag.String("email", "", "admin email (required)")
		name        = flag.String("name", "Administrator", "admin display name")
		password    = flag.String("password", "", "admin password (required, min 8 chars)")
		role        = flag.String("role", "admin", "admin role")
		withCatalog = flag.Bool("catalog", false, "also seed sample products")
		seedTimeout = flag.Duration("timeout", 30*time.Second, "overall timeout")
	)
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: seed -email admin@example.com -password secret [-name ...] [-role ...] [-catalog]")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig("seed")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), *seedTimeout)
	defer cancel()

	postgresDB, err := persistence.NewPostgresDB(ctx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer postgresDB.Close()

	adminRepo := postgres.NewAdminRepository(log, postgresDB)

	a, err := admin.NewAdmin(*email, *name, *password, *role)
	if err != nil {
		log.Error("Invalid admin parameters", "error", err)
		os.Exit(1)
	}

	if err := adminRepo.Create(ctx, a); err != nil {
		var dup admin.ErrDuplicateEmail
		if errors.As(err, &dup) {
			log.Warn("Admin already exists, skipping", "email", *email)
		} else {
			log.Error("Failed to create admin", "email", *email, "error", err)
			os.Exit(1)
		}
	} else {
		log.Info("Admin account created", "email", a.Email, "role", a.Role)
	}

	if !*withCatalog {
		return
	}

	mongoDB, err := persistence.NewMongoDB(ctx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() { _ = mongoDB.Close(context.Background()) }()

	productRepo := mongo.NewProductRepository(log, mongoDB.Database())

	samples := []struct {
		name, description, category string
		price                       int64
	}{
		{"Lanka Auto Diesel", "High-quality auto diesel", "fuel", 36300},
		{"Petrol 92 Octane", "Standard 92 octane petrol", "fuel", 34100},
		{"Red Bricks (1000)", "Kiln-fired construction bricks", "construction", 2500000},
		{"River Sand (cube)", "Washed river sand per cube", "construction", 1650000},
	}

	for _, s := range samples {
		p, err := catalog.NewProduct(s.name, s.description, "", s.category, s.price)
		if err != nil {
			log.Error("Invalid sample product", "name", s.name, "error", err)
			continue
		}
		if err := productRepo.Create(ctx, p); err != nil {
			log.Error("Failed to create sample product", "name", s.name, "error", err)
			continue
		}
		log.Info("Sample product created", "name", p.Name, "price", p.Price)
	}

	log.Info("Seeding completed")
}

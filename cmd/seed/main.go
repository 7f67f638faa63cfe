// Package main provides data seeding for the Solarcom console.
//
// Seeds the default admin account and starter template schemas. Safe to
// run repeatedly: existing rows are left untouched.
package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/sidyfoba/solarcom-console/internal/config"
	"github.com/sidyfoba/solarcom-console/internal/infrastructure"
	apperrors "github.com/sidyfoba/solarcom-console/internal/pkg/errors"
	"github.com/sidyfoba/solarcom-console/internal/pkg/logger"
	"github.com/sidyfoba/solarcom-console/internal/schema"
	"github.com/sidyfoba/solarcom-console/internal/store"
)

//go:embed templates.yaml
var templateFixtures []byte

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	db, err := infrastructure.NewDatabaseClients(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(ctx); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	}

	logger.Info("Starting data seeding...")

	if err := seedAdmin(ctx, db.Store, cfg.Security.BcryptCost); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := seedTemplates(ctx, db.Store); err != nil {
		return fmt.Errorf("seed templates: %w", err)
	}

	logger.Info("Data seeding completed successfully")
	return nil
}

// seedAdmin creates the default admin account. The password comes from
// SEED_ADMIN_PASSWORD; without one a random password is generated and
// printed once.
func seedAdmin(ctx context.Context, s *store.Store, bcryptCost int) error {
	if _, err := s.GetUserByUsername(ctx, "admin"); err == nil {
		logger.Info("Admin user already exists, skipping")
		return nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	generated := password == ""
	if generated {
		password = uuid.New().String()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if err := s.CreateUser(ctx, &store.User{
		ID:           uuid.New().String(),
		Username:     "admin",
		Email:        "admin@solarcom.local",
		PasswordHash: string(hash),
		Roles:        []string{"admin"},
	}); err != nil {
		return err
	}

	if generated {
		// Printed to stdout on purpose: this is the only time the
		// generated password is available.
		fmt.Printf("created admin user with password: %s\n", password)
	} else {
		logger.Info("Admin user created")
	}
	return nil
}

type fieldFixture struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Required bool   `yaml:"required"`
	Options  string `yaml:"options"`

	DateRange *struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"dateRange"`

	SLAs []struct {
		Priority string `yaml:"priority"`
		Hours    int    `yaml:"hours"`
	} `yaml:"slas"`
}

type templateFixture struct {
	Family      string         `yaml:"family"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Icon        string         `yaml:"icon"`
	Fields      []fieldFixture `yaml:"fields"`
}

type fixtureFile struct {
	Templates []templateFixture `yaml:"templates"`
}

func seedTemplates(ctx context.Context, s *store.Store) error {
	var fixtures fixtureFile
	if err := yaml.Unmarshal(templateFixtures, &fixtures); err != nil {
		return fmt.Errorf("parse template fixtures: %w", err)
	}

	for _, fx := range fixtures.Templates {
		tpl, err := buildTemplate(fx)
		if err != nil {
			return fmt.Errorf("build template %q: %w", fx.Name, err)
		}
		if err := s.CreateTemplate(ctx, tpl); err != nil {
			if errors.Is(err, apperrors.ErrAlreadyExists) {
				logger.Info("Template already exists, skipping", zap.String("name", fx.Name))
				continue
			}
			return fmt.Errorf("create template %q: %w", fx.Name, err)
		}
		logger.Info("Template seeded",
			zap.String("family", fx.Family),
			zap.String("name", fx.Name),
		)
	}
	return nil
}

func buildTemplate(fx templateFixture) (*schema.Template, error) {
	tpl := &schema.Template{
		ID:          uuid.New().String(),
		Family:      schema.Family(fx.Family),
		Name:        fx.Name,
		Description: fx.Description,
		Icon:        fx.Icon,
		Active:      true,
	}
	for _, f := range fx.Fields {
		var extras schema.FieldExtras
		if f.DateRange != nil {
			extras.DateRange = &schema.DateRangeSpec{
				StartName: f.DateRange.Start,
				EndName:   f.DateRange.End,
			}
		}
		for _, sla := range f.SLAs {
			extras.SLAs = append(extras.SLAs, schema.SLAEntry{
				PriorityLabel: sla.Priority,
				SLA:           sla.Hours,
			})
		}
		if _, err := tpl.AddField(f.Name, schema.FieldKind(f.Type), f.Options, f.Required, &extras); err != nil {
			return nil, err
		}
	}
	if err := tpl.Validate(); err != nil {
		return nil, err
	}
	return tpl, nil
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-shop-keeper/internal/adapter"
	"github.com/MKhiriev/go-shop-keeper/internal/config"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/models"
	"github.com/MKhiriev/go-shop-keeper/seed"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Println(models.NewBuildInfo(buildVersion, buildDate, buildCommit))

	log := logger.NewLogger("go-shop-seed")
	if err := run(context.Background(), log); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	cfg, err := config.LoadStructuredConfig(os.Args[1:])
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}
	if cfg.Auth.AdminEmail == "" || cfg.Auth.AdminPassword == "" {
		return fmt.Errorf("admin e-mail and password must be configured")
	}

	shop, err := adapter.NewHTTPShopAdapter(cfg.Adapter, log)
	if err != nil {
		return err
	}

	health, err := shop.Health(ctx)
	if err != nil {
		return fmt.Errorf("shop unreachable: %w", err)
	}
	if !health.OK {
		return fmt.Errorf("shop is unhealthy: db %s", health.DB)
	}

	if _, err = shop.AdminLogin(ctx, models.LoginRequest{Identifier: cfg.Auth.AdminEmail, Password: cfg.Auth.AdminPassword}); err != nil {
		return fmt.Errorf("admin login failed: %w", err)
	}

	products, err := seed.Products()
	if err != nil {
		return err
	}

	created, err := seed.Run(ctx, shop, products, log)
	if err != nil {
		return err
	}

	log.Info().Int("created", created).Int("total", len(products)).Msg("catalog seeded")
	return nil
}

package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/kitcart/pkg/config"
	"github.com/angelmondragon/kitcart/pkg/db"
	"github.com/angelmondragon/kitcart/pkg/logger"
)

// MaybeRun applies the embedded migrations at startup when the storage driver is SQL-backed
// and auto-migration is enabled.
func MaybeRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	driver := cfg.Storage.DriverKind()
	if !cfg.Storage.AutoMigrate || !driver.UsesSQL() {
		return nil
	}

	dialect, err := Dialect(driver)
	if err != nil {
		return err
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dialect": dialect})
	logg.Info(ctx, "running goose migrations (auto-run)")

	if err := Run(ctx, sqlDB, dialect, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}

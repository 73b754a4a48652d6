package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/angelmondragon/kitcart/pkg/enums"
	"github.com/pressly/goose/v3"
)

// DefaultDir is served from the migrations embedded in the binary.
const DefaultDir = "migrations"

//go:embed migrations/*.sql
var embedded embed.FS

// Dialect maps a SQL storage driver onto its goose dialect.
func Dialect(driver enums.StorageDriver) (string, error) {
	switch driver {
	case enums.StorageDriverPostgres:
		return "postgres", nil
	case enums.StorageDriverSQLite:
		return "sqlite3", nil
	}
	return "", fmt.Errorf("storage driver %q has no sql migrations", driver)
}

func prepare(dialect, dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}
	var base fs.FS
	if dir == DefaultDir {
		base = embedded
	}
	goose.SetBaseFS(base)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return nil
}

// Run executes a standard goose command that requires a DB connection.
func Run(ctx context.Context, db *sql.DB, dialect, dir string, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if err := prepare(dialect, dir); err != nil {
		return err
	}

	// RunContext prints status output to stdout (goose internal)
	if err := goose.RunContext(ctx, command, db, dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// MigrateToVersion migrates up/down to the requested version by comparing current DB version.
func MigrateToVersion(ctx context.Context, db *sql.DB, dialect, dir string, targetVersion string) error {
	if targetVersion == "" {
		return fmt.Errorf("targetVersion is required")
	}
	if err := prepare(dialect, dir); err != nil {
		return err
	}

	target, err := strconv.ParseInt(targetVersion, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS): %w", targetVersion, err)
	}

	current, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}

	switch {
	case current == target:
		return nil

	case current < target:
		if err := goose.UpToContext(ctx, db, dir, target); err != nil {
			return fmt.Errorf("goose up-to %d: %w", target, err)
		}
		return nil

	default:
		if err := goose.DownToContext(ctx, db, dir, target); err != nil {
			return fmt.Errorf("goose down-to %d: %w", target, err)
		}
		return nil
	}
}

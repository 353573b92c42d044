// Package migrations embeds the PostgreSQL schema and applies it with
// golang-migrate.
package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	log "github.com/sirupsen/logrus"
)

//go:embed sql/*.sql
var files embed.FS

// Source returns the embedded migrations as a golang-migrate source driver.
func Source() (source.Driver, error) {
	return iofs.New(files, "sql")
}

// Up applies every pending migration against databaseURL, a pgx5:// URL.
func Up(databaseURL string, logger *log.Logger) error {
	src, err := Source()
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.WithFields(log.Fields{"source_error": srcErr, "db_error": dbErr}).Warn("closing migrations failed")
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("✅ Database schema is up to date")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	logger.WithFields(log.Fields{"version": version, "dirty": dirty}).Info("✅ Database migrated")
	return nil
}

package database

import (
	"context"
	"embed"
	"io/fs"
	"path"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-backend/errs"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate applies every pending migration for the dialect of db.
func Migrate(ctx context.Context, db *gorm.DB) error {
	var (
		dialect goose.Dialect
		dir     string
	)
	switch name := db.Dialector.Name(); name {
	case "postgres":
		dialect, dir = goose.DialectPostgres, "postgres"
	case "sqlite":
		dialect, dir = goose.DialectSQLite3, "sqlite"
	default:
		return errs.NewInvalidConfigError("DATABASE_URL", "no migrations for dialect "+name)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errs.NewMigrationError(err)
	}

	fsys, err := fs.Sub(migrationsFS, path.Join("migrations", dir))
	if err != nil {
		return errs.NewMigrationError(err)
	}

	provider, err := goose.NewProvider(dialect, sqlDB, fsys)
	if err != nil {
		return errs.NewMigrationError(err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errs.NewMigrationError(err)
	}
	for _, res := range results {
		log.Info().
			Str("migration", res.Source.Path).
			Dur("duration", res.Duration).
			Msg("applied migration")
	}

	return nil
}

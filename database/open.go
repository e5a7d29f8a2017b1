package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/errs"
)

const sqliteScheme = "sqlite://"

// gormWriter routes gorm's log lines into zerolog.
type gormWriter struct {
	logger zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.logger.Warn().Msgf(format, args...)
}

// Open connects to the database named by cfg.URL and registers read replicas.
func Open(cfg config.DatabaseConfig, log zerolog.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.URL)
	if err != nil {
		return nil, err
	}

	newLogger := logger.New(
		gormWriter{log.With().Str("component", "gorm").Logger()},
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		return nil, errs.NewDatabaseError("connect to", "database", err)
	}

	if len(cfg.ReplicaURLs) > 0 {
		if db.Dialector.Name() != "postgres" {
			return nil, errs.NewInvalidConfigError("DATABASE_REPLICA_URLS", "read replicas require a postgres primary")
		}
		replicas := make([]gorm.Dialector, 0, len(cfg.ReplicaURLs))
		for _, dsn := range cfg.ReplicaURLs {
			replicas = append(replicas, postgresDialector(dsn))
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, fmt.Errorf("register read replicas: %w", err)
		}
		log.Info().Int("replicas", len(replicas)).Msg("read replicas registered")
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, errs.NewDatabaseError("ping", "database", err)
	}

	return db, nil
}

func dialectorFor(url string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(url, sqliteScheme):
		path := strings.TrimPrefix(url, sqliteScheme)
		if path == "" {
			return nil, errs.NewInvalidConfigError("DATABASE_URL", "sqlite path is empty")
		}
		if !strings.Contains(path, "?") {
			path += "?_pragma=busy_timeout(5000)"
		}
		return sqlite.Open(path), nil
	case strings.HasPrefix(url, "postgres://"),
		strings.HasPrefix(url, "postgresql://"),
		strings.Contains(url, "host="):
		return postgresDialector(url), nil
	default:
		return nil, errs.NewInvalidConfigError("DATABASE_URL", "unsupported database url scheme")
	}
}

func postgresDialector(dsn string) gorm.Dialector {
	return postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	})
}

// Package db opens the session database. The default driver is an
// in-memory sqlite database, which scopes every proposal, event, and chat
// message to the running process; a postgres DSN can be configured for
// deployments that want more.
package db

import (
	"fmt"
	"strings"

	"github.com/robmoran/proposalkit/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the configured database.
func Open(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	log.Info("database opened",
		zap.String("driver", cfg.DatabaseDriver),
	)
	return conn, nil
}

func dialectorFor(cfg config.Config) (gorm.Dialector, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.DatabaseDriver))
	switch driver {
	case "sqlite", "":
		return sqlite.Open(cfg.DatabaseDSN), nil
	case "postgres":
		return postgres.Open(cfg.DatabaseDSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

var Module = fx.Module("db",
	fx.Provide(Open),
)

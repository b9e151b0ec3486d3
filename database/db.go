package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Backend    string
	SqlitePath string
	DSN        string
	Reset      bool
	Debug      bool
}

func SetupDatabase(cfg Config, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Backend {
	case "sqlite", "":
		dialector = sqlite.Open(cfg.SqlitePath)
	case "postgres":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres backend requires a dsn")
		}
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database backend: %s", cfg.Backend)
	}

	gormLogger := logger.Default.LogMode(logger.Silent)
	if cfg.Debug {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Backend != "postgres" {
		// sqlite allows a single writer
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	stmt := &gorm.Statement{DB: db}
	if cfg.Reset {
		for i := len(Tabels) - 1; i >= 0; i-- {
			if err := stmt.Parse(Tabels[i]); err != nil {
				return nil, err
			}
			log.Info("dropping table", zap.String("table", stmt.Schema.Table))
			if err := db.Migrator().DropTable(Tabels[i]); err != nil {
				return nil, fmt.Errorf("failed to drop table %s: %w", stmt.Schema.Table, err)
			}
		}
	}

	for i, table := range Tabels {
		if err := stmt.Parse(table); err != nil {
			return nil, err
		}
		log.Debug("migrating table",
			zap.String("table", stmt.Schema.Table),
			zap.Int("index", i+1),
			zap.Int("total", len(Tabels)))
		if err := db.AutoMigrate(table); err != nil {
			return nil, fmt.Errorf("failed to migrate table %s: %w", stmt.Schema.Table, err)
		}
	}

	return db, nil
}

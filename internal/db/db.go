package db

import (
	"fmt"
	stdlog "log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/stairforecast/backend/internal/logger"
	"github.com/stairforecast/backend/internal/types"
	"github.com/stairforecast/backend/internal/utils"
)

// Service owns the gorm handle. Postgres is the primary driver; sqlite is
// the file-backed fallback for local development (DB_DRIVER=sqlite).
type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

func New(logg *logger.Logger) (*Service, error) {
	serviceLog := logg.With("service", "DBService")

	gormLog := gormLogger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	cfg := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
	}

	driver := strings.ToLower(utils.GetEnv("DB_DRIVER", "postgres", logg))

	var (
		db  *gorm.DB
		err error
	)
	switch driver {
	case "sqlite":
		path := utils.GetEnv("SQLITE_PATH", "stairforecast.db", logg)
		serviceLog.Info("Connecting to sqlite...", "path", path)
		db, err = gorm.Open(sqlite.Open(path), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
	case "postgres":
		host := utils.GetEnv("POSTGRES_HOST", "localhost", logg)
		port := utils.GetEnv("POSTGRES_PORT", "5432", logg)
		user := utils.GetEnv("POSTGRES_USER", "postgres", logg)
		password := utils.GetEnv("POSTGRES_PASSWORD", "", logg)
		name := utils.GetEnv("POSTGRES_NAME", "stairforecast", logg)

		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			user, password, host, port, name,
		)
		serviceLog.Info("Connecting to Postgres...", "host", host, "db", name)
		db, err = gorm.Open(postgres.Open(dsn), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}

	return &Service{db: db, log: serviceLog}, nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	err := s.db.AutoMigrate(
		&types.SKU{},
		&types.ShipTo{},
		&types.ForecastVersion{},
		&types.ForecastEntry{},
		&types.UploadBatch{},
	)
	if err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}

func (s *Service) DB() *gorm.DB {
	return s.db
}

package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Baaaki/store-rating/internal/config"
	"github.com/Baaaki/store-rating/internal/models"
	"github.com/Baaaki/store-rating/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Dialector picks the gorm driver for the configured DB_DRIVER.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverMySQL:
		return mysql.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// GormConfig is shared by the server, the seed tool and the test database.
// TranslateError turns driver-specific unique violations into gorm.ErrDuplicatedKey.
func GormConfig(isDevelopment bool) *gorm.Config {
	level := gormlogger.Warn
	if isDevelopment {
		level = gormlogger.Info
	}
	return &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(log.New(os.Stdout, "\r\n", log.LstdFlags), level, isDevelopment),
	}
}

// newGormLogger skips ErrRecordNotFound; repositories report a miss as nil, nil.
func newGormLogger(w gormlogger.Writer, level gormlogger.LogLevel, colorful bool) gormlogger.Interface {
	return gormlogger.New(w, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  colorful,
	})
}

// Connect opens the connection pool. The returned handle is injected into
// every repository; there is no package-level connection.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, GormConfig(!cfg.IsProduction()))
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	logger.Log.Info("Database connected successfully",
		zap.String("driver", cfg.DBDriver),
	)

	return db, nil
}

// Migrate creates or updates the users, stores and ratings tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Store{}, &models.Rating{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	logger.Log.Info("Database migration completed")
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

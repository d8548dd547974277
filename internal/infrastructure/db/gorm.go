package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"smartbikepass-backend/internal/domain/application"
	"smartbikepass-backend/internal/domain/audit"
	"smartbikepass-backend/internal/domain/user"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Dialector picks the gorm dialector for driver. dsn is a MySQL DSN or a SQLite file path.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverMySQL:
		return mysql.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
}

func OpenGorm(driver, dsn string, log *zap.Logger) (*gorm.DB, error) {
	dial, err := Dialector(driver, dsn)
	if err != nil {
		return nil, err
	}
	db, err := OpenGormWithDialector(dial, log)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// one writer at a time; SQLite has no row locks
		sqlDB, _ := db.DB()
		sqlDB.SetMaxOpenConns(1)
	}
	log.Info("gorm: connected", zap.String("driver", driver))
	return db, nil
}

func OpenGormWithDialector(dial gorm.Dialector, log *zap.Logger) (*gorm.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cfg := &gorm.Config{
		Logger: logger.New(gormWriter{log.Sugar()}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError:       true,
		DisableAutomaticPing: true,
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the three persisted collections.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&application.Application{}, &audit.Entry{}, &user.User{})
}

type gormWriter struct{ s *zap.SugaredLogger }

func (w gormWriter) Printf(format string, args ...any) { w.s.Warnf(format, args...) }

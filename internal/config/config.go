package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type Config struct {
	AppPort string

	DBDriver   string
	MySQLHost  string
	MySQLPort  string
	MySQLDB    string
	MySQLUser  string
	MySQLPass  string
	SQLitePath string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	UploadDir   string
	MaxUploadMB int

	JWTSecret      string
	JWTExpireHours int

	LogLevel  string
	LogFormat string

	// Seed passwords for the reviewer accounts; an empty one skips that account.
	SeedTransportPassword string
	SeedPrincipalPassword string
	SeedAdminPassword     string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	return &Config{
		AppPort: getenv("APP_PORT", "8080"),

		DBDriver:   getenv("DB_DRIVER", DriverMySQL),
		MySQLHost:  getenv("MYSQL_HOST", "mysql"),
		MySQLPort:  getenv("MYSQL_PORT", "3306"),
		MySQLDB:    getenv("MYSQL_DB", "smartbikepass"),
		MySQLUser:  getenv("MYSQL_USER", "smartbikepass"),
		MySQLPass:  getenv("MYSQL_PASS", "smartbikepass"),
		SQLitePath: getenv("SQLITE_PATH", "smartbikepass.db"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getint("REDIS_DB", 0),

		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),

		UploadDir:   getenv("UPLOAD_DIR", "uploads"),
		MaxUploadMB: getint("MAX_UPLOAD_MB", 16),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpireHours: getint("JWT_EXPIRE_HOURS", 12),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),

		SeedTransportPassword: os.Getenv("SEED_TRANSPORT_PASSWORD"),
		SeedPrincipalPassword: os.Getenv("SEED_PRINCIPAL_PASSWORD"),
		SeedAdminPassword:     os.Getenv("SEED_ADMIN_PASSWORD"),
	}
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if _, err := net.LookupPort("tcp", c.AppPort); err != nil {
		return fmt.Errorf("invalid APP_PORT %q: %w", c.AppPort, err)
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	if c.JWTExpireHours <= 0 {
		return fmt.Errorf("invalid JWT_EXPIRE_HOURS %d", c.JWTExpireHours)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("invalid MAX_UPLOAD_MB %d", c.MaxUploadMB)
	}
	if c.UploadDir == "" {
		return errors.New("missing UPLOAD_DIR")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime for DATETIME; clientFoundRows so a no-op UPDATE still reports the matched row
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&clientFoundRows=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == DriverSQLite {
		return c.SQLitePath
	}
	return c.MySQLDSN()
}

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

func (c *Config) TokenTTL() time.Duration { return time.Duration(c.JWTExpireHours) * time.Hour }

// BodyLimit is the echo BodyLimit value, e.g. "16M".
func (c *Config) BodyLimit() string { return fmt.Sprintf("%dM", c.MaxUploadMB) }

package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DBConfig struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifeTime int // минут
}

func LoadDBConfig() (*DBConfig, error) {
	cfg := &DBConfig{
		Driver:          getEnv("DB_DRIVER", DriverPostgres),
		Host:            getEnv("DB_HOST", "postgres"),
		User:            getEnv("DB_USER", "calendar"),
		Password:        getEnv("DB_PASSWORD", "calendar"),
		Name:            getEnv("DB_NAME", "calendar_db"),
		SSLMode:         getEnv("DB_SSLMODE", "disable"),
		TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
		SQLitePath:      getEnv("DB_SQLITE_PATH", "calendar.db"),
		Port:            getEnvInt("DB_PORT", 5432),
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifeTime: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 30),
	}

	switch cfg.Driver {
	case DriverPostgres:
		if cfg.Host == "" || cfg.User == "" || cfg.Name == "" {
			return nil, fmt.Errorf("invalid DB config: host/user/name must not be empty")
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("invalid DB config: sqlite path must not be empty")
		}
	default:
		return nil, fmt.Errorf("invalid DB config: unknown driver %q", cfg.Driver)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Env       string // development | production
	LogLevel  string
	GRPCAddr  string
	// Каталог для копий выгрузок; пусто: копии не сохраняются.
	ExportDir string
	// Домен в UID событий ICS.
	ICSDomain string
}

// LoadDotEnv подгружает переменные из файлов .env, если они есть.
// Уже заданные переменные окружения не перезаписываются.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func LoadAppConfig() (*AppConfig, error) {
	cfg := &AppConfig{
		Env:       getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		GRPCAddr:  getEnv("CORE_GRPC_ADDR", ":50051"),
		ExportDir: getEnv("EXPORT_DIR", ""),
		ICSDomain: getEnv("ICS_UID_DOMAIN", "calendar.example.com"),
	}

	if _, _, err := net.SplitHostPort(cfg.GRPCAddr); err != nil {
		return nil, fmt.Errorf("invalid CORE_GRPC_ADDR %q: %w", cfg.GRPCAddr, err)
	}
	if cfg.Env != "development" && cfg.Env != "production" {
		return nil, fmt.Errorf("invalid APP_ENV %q", cfg.Env)
	}

	return cfg, nil
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

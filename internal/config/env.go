package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvDataDir      = "JOBMATCH_DATA_DIR"
	EnvAdzunaAppID  = "ADZUNA_APP_ID"
	EnvAdzunaAppKey = "ADZUNA_APP_KEY"
	EnvSMTPPassword = "SMTP_PASSWORD"
)

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// DataDirEnvFile is the .env path read from inside the data dir.
func DataDirEnvFile(dataDir string) string {
	return filepath.Join(dataDir, ".env")
}

// ApplyEnv overlays environment overrides onto cfg.
func ApplyEnv(cfg Config) Config {
	if v := strings.TrimSpace(os.Getenv(EnvDataDir)); v != "" {
		cfg.App.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAdzunaAppID)); v != "" {
		cfg.Sources.Adzuna.AppID = v
	}
	return cfg
}

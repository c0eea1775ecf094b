package config

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	// DefaultFile is used when neither a flag, the environment, nor the
	// global config names a store file.
	DefaultFile = "students.csv"

	// FileEnvVar overrides default_file from the global config.
	FileEnvVar = "ROSTER_FILE"

	cacheSubdir = "roster"
)

// LoadEnv loads a .env file from the working directory if present.
// Variables already set in the environment win.
func LoadEnv() {
	_ = godotenv.Load()
}

// GetConfigValue returns the environment variable envKey if set, else configValue.
func GetConfigValue(envKey, configValue string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return configValue
}

// ResolveFile picks the store file: flagValue, then $ROSTER_FILE, then the
// global config's default_file, then DefaultFile. The result has ~ expanded.
func ResolveFile(flagValue string) string {
	if flagValue != "" {
		return ExpandPath(flagValue)
	}

	var fromConfig string
	if cfg, err := LoadGlobalConfig(); err == nil {
		fromConfig = cfg.DefaultFile
	}

	if v := GetConfigValue(FileEnvVar, fromConfig); v != "" {
		return ExpandPath(v)
	}
	return DefaultFile
}

// CachePath returns the directory holding query mirrors.
// Respects cache_dir, then XDG_CACHE_HOME, then ~/.cache.
func CachePath() string {
	if cfg, err := LoadGlobalConfig(); err == nil && cfg.CacheDir != "" {
		return cfg.CacheDir
	}

	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), cacheSubdir)
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, cacheSubdir)
}

// MirrorDBPath returns the SQLite mirror location for a store file.
// Each absolute store path maps to its own database.
func MirrorDBPath(storePath string) string {
	sum := sha256.Sum256([]byte(storePath))
	name := hex.EncodeToString(sum[:8]) + ".db"
	return filepath.Join(CachePath(), name)
}

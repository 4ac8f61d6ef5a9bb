// Package where resolves the application's per-user filesystem locations.
package where

import (
	"os"
	"path/filepath"

	"github.com/nrkcat/nrkcat/constant"
	"github.com/nrkcat/nrkcat/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "NRKCAT_CONFIG_PATH"

// EnvCachePath overrides the cache directory.
const EnvCachePath = "NRKCAT_CACHE_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the configuration directory, honouring NRKCAT_CONFIG_PATH.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Cache resolves the cache directory, honouring NRKCAT_CACHE_PATH.
// Falls back to ./cache when the platform reports no user cache directory.
func Cache() string {
	if custom, ok := os.LookupEnv(EnvCachePath); ok {
		return ensureDir(custom)
	}

	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.App))
}

// CacheFile is the single blob holding every persisted catalogue response.
func CacheFile() string {
	return filepath.Join(Cache(), "catalogue.json")
}

// Logs resolves the log directory.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

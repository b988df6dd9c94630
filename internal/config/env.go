package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// environment resolves TODO_* variables from the process environment,
// falling back to values read from a .env file.
type environment struct {
	dotenv map[string]string
}

// loadEnv reads path with godotenv. A missing file is not an error.
func loadEnv(path string) (environment, error) {
	m, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return environment{}, nil
		}
		return environment{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return environment{dotenv: m}, nil
}

func (e environment) lookup(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	v, ok := e.dotenv[key]
	return v, ok
}

func parseEnv(cfg *Config, env environment) error {
	str := func(key string, dst *string) {
		if v, ok := env.lookup(key); ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := env.lookup(key)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = d
		return nil
	}

	str("TODO_STORAGE_DRIVER", &cfg.Storage.Driver)
	str("TODO_STORAGE_DSN", &cfg.Storage.DSN)
	str("TODO_DIGEST", &cfg.Digest)
	str("TODO_LOG_LEVEL", &cfg.Log.Level)
	str("TODO_LOG_FORMAT", &cfg.Log.Format)

	if v, ok := env.lookup("TODO_BADGER_SYNC_WRITES"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid TODO_BADGER_SYNC_WRITES: %w", err)
		}
		cfg.Badger.SyncWrites = b
	}
	if v, ok := env.lookup("TODO_PAGE_SIZE"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TODO_PAGE_SIZE: %w", err)
		}
		cfg.PageSize = n
	}

	return errors.Join(
		dur("TODO_SESSION_TTL", &cfg.SessionTTL),
		dur("TODO_RESEND_COOLDOWN", &cfg.ResendCooldown),
		dur("TODO_AUTOSAVE_DELAY", &cfg.AutosaveDelay),
		dur("TODO_REMINDER_INTERVAL", &cfg.ReminderInterval),
	)
}

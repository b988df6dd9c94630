package config

import (
	"fmt"
	"time"

	"github.com/nero7007/Professional-To-Do-List/internal/cryptox"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/kv"
)

// Config holds runtime settings for the todo CLI.
type Config struct {
	Storage          Storage
	Badger           Badger
	SessionTTL       time.Duration
	ResendCooldown   time.Duration
	PageSize         int
	AutosaveDelay    time.Duration
	ReminderInterval time.Duration
	Digest           string
	Log              Log
}

type Storage struct {
	Driver string
	DSN    string
}

type Badger struct {
	SyncWrites bool
}

type Log struct {
	Level  string
	Format string
}

// Overrides carries command-line values. Empty fields are not applied.
type Overrides struct {
	ConfigFile string
	Driver     string
	DSN        string
	LogLevel   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Storage = Storage{Driver: kv.DriverSQLite, DSN: "todo.db"}
	c.Badger = Badger{SyncWrites: false}
	c.SessionTTL = 7 * 24 * time.Hour
	c.ResendCooldown = 30 * time.Second
	c.PageSize = 12
	c.AutosaveDelay = 2 * time.Second
	c.ReminderInterval = 30 * time.Second
	c.Digest = cryptox.DigestChecksum
	c.Log = Log{Level: "warn", Format: "text"}
}

// LoadConfig builds a Config from defaults, the config file, the
// environment and finally ov. Later sources take precedence.
func LoadConfig(ov Overrides) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	env, err := loadEnv(".env")
	if err != nil {
		return nil, err
	}

	path := ov.ConfigFile
	if path == "" {
		path, _ = env.lookup("TODO_CONFIG")
	}
	if path != "" {
		if err := parseFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := parseEnv(cfg, env); err != nil {
		return nil, err
	}
	applyOverrides(cfg, ov)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyOverrides(cfg *Config, ov Overrides) {
	if ov.Driver != "" {
		cfg.Storage.Driver = ov.Driver
	}
	if ov.DSN != "" {
		cfg.Storage.DSN = ov.DSN
	}
	if ov.LogLevel != "" {
		cfg.Log.Level = ov.LogLevel
	}
}

// Validate rejects values no component could run with.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case kv.DriverSQLite, kv.DriverPostgres, kv.DriverMySQL, kv.DriverBadger, kv.DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.SessionTTL)
	}
	if c.ReminderInterval <= 0 {
		return fmt.Errorf("reminder interval must be positive, got %s", c.ReminderInterval)
	}
	if _, err := cryptox.NewDigester(c.Digest); err != nil {
		return err
	}
	return nil
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nero7007/Professional-To-Do-List/internal/timex"
)

// fileConfig is the on-disk shape shared by the JSON and YAML loaders.
// Pointer fields distinguish "absent" from a zero value so a file only
// overrides what it mentions.
type fileConfig struct {
	Storage *struct {
		Driver string `json:"driver" yaml:"driver"`
		DSN    string `json:"dsn" yaml:"dsn"`
	} `json:"storage" yaml:"storage"`
	Badger *struct {
		SyncWrites *bool `json:"sync_writes" yaml:"sync_writes"`
	} `json:"badger" yaml:"badger"`
	SessionTTL       *timex.Duration `json:"session_ttl" yaml:"session_ttl"`
	ResendCooldown   *timex.Duration `json:"resend_cooldown" yaml:"resend_cooldown"`
	PageSize         *int            `json:"page_size" yaml:"page_size"`
	AutosaveDelay    *timex.Duration `json:"autosave_delay" yaml:"autosave_delay"`
	ReminderInterval *timex.Duration `json:"reminder_interval" yaml:"reminder_interval"`
	Digest           string          `json:"digest" yaml:"digest"`
	Log              *struct {
		Level  string `json:"level" yaml:"level"`
		Format string `json:"format" yaml:"format"`
	} `json:"log" yaml:"log"`
}

// parseFile overlays cfg with the settings in path. The extension picks
// the decoder: .yaml and .yml use YAML, anything else JSON.
func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *fileConfig) apply(cfg *Config) {
	if fc.Storage != nil {
		if fc.Storage.Driver != "" {
			cfg.Storage.Driver = fc.Storage.Driver
		}
		if fc.Storage.DSN != "" {
			cfg.Storage.DSN = fc.Storage.DSN
		}
	}
	if fc.Badger != nil && fc.Badger.SyncWrites != nil {
		cfg.Badger.SyncWrites = *fc.Badger.SyncWrites
	}
	if fc.SessionTTL != nil {
		cfg.SessionTTL = fc.SessionTTL.Duration
	}
	if fc.ResendCooldown != nil {
		cfg.ResendCooldown = fc.ResendCooldown.Duration
	}
	if fc.PageSize != nil {
		cfg.PageSize = *fc.PageSize
	}
	if fc.AutosaveDelay != nil {
		cfg.AutosaveDelay = fc.AutosaveDelay.Duration
	}
	if fc.ReminderInterval != nil {
		cfg.ReminderInterval = fc.ReminderInterval.Duration
	}
	if fc.Digest != "" {
		cfg.Digest = fc.Digest
	}
	if fc.Log != nil {
		if fc.Log.Level != "" {
			cfg.Log.Level = fc.Log.Level
		}
		if fc.Log.Format != "" {
			cfg.Log.Format = fc.Log.Format
		}
	}
}

// Package config loads runtime configuration for the todo CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file, JSON or YAML by extension, named by --config or
//     TODO_CONFIG.
//  3. A .env file in the working directory (if present) and TODO_*
//     environment variables. Real environment variables win over .env.
//  4. Command-line flags, passed in as Overrides.
//
// # Environment
//
//	TODO_CONFIG              path to a .json, .yaml or .yml file
//	TODO_STORAGE_DRIVER      sqlite | postgres | mysql | badger | memory
//	TODO_STORAGE_DSN         file path, directory or connection string
//	TODO_BADGER_SYNC_WRITES  true | false
//	TODO_SESSION_TTL         duration, e.g. 168h
//	TODO_RESEND_COOLDOWN     duration, e.g. 30s
//	TODO_PAGE_SIZE           notes per page
//	TODO_AUTOSAVE_DELAY      draft autosave debounce
//	TODO_REMINDER_INTERVAL   how often the shell checks alarms
//	TODO_DIGEST              checksum | bcrypt
//	TODO_LOG_LEVEL           debug | info | warn | error
//	TODO_LOG_FORMAT          text | json
//
// # File schema
//
// Durations use timex.Duration, so they may be strings like "30s" or integer
// nanoseconds:
//
//	{
//	  "storage": {"driver": "sqlite", "dsn": "todo.db"},
//	  "badger": {"sync_writes": true},
//	  "session_ttl": "168h",
//	  "resend_cooldown": "30s",
//	  "page_size": 12,
//	  "autosave_delay": "2s",
//	  "reminder_interval": "30s",
//	  "digest": "checksum",
//	  "log": {"level": "info", "format": "text"}
//	}
package config

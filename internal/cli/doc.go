// Package cli provides the todo command-line client.
//
// It wires configuration, the local key-value store and the services, then
// exposes them as one-shot cobra subcommands (todo login, todo notes add,
// ...) and as an interactive shell (todo shell). The current session is
// persisted in the store, so one-shot commands share a login.
//
// The shell runs a read–eval–print loop next to a reminder watcher that
// announces alarms as they fall due. See App, runREPL and
// StartReminderWatcher for details.
package cli

// Package services implements the app's operations on top of the
// repositories: accounts and sessions, notes, alarms, drafts and preferences.
//
// Every operation returns a plain error whose message is fit to show the
// user. Match failures with errors.Is against the sentinels in
// internal/common, or errors.As for *ValidationError.
package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/nero7007/Professional-To-Do-List/internal/cryptox"
	"github.com/nero7007/Professional-To-Do-List/internal/logging"
)

const (
	DefaultSessionTTL     = 7 * 24 * time.Hour
	DefaultResendCooldown = 30 * time.Second
	DefaultPageSize       = 12
)

// Options carries the tunables and seams shared by the services. Zero values
// fall back to defaults.
type Options struct {
	SessionTTL     time.Duration
	ResendCooldown time.Duration
	Digester       cryptox.Digester
	Logger         logging.Logger

	Now     func() time.Time
	NewID   func() string
	NewCode func() (string, error)
}

func (o Options) withDefaults() Options {
	if o.SessionTTL <= 0 {
		o.SessionTTL = DefaultSessionTTL
	}
	if o.ResendCooldown <= 0 {
		o.ResendCooldown = DefaultResendCooldown
	}
	if o.Digester == nil {
		o.Digester = cryptox.ChecksumDigester{}
	}
	if o.Logger == nil {
		o.Logger = logging.Nop()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	if o.NewCode == nil {
		o.NewCode = cryptox.GenerateCode
	}
	return o
}

// Package common defines the storage key space and the sentinel errors shared
// by repositories, services and the CLI. Match errors with errors.Is.
package common

import "errors"

var (
	ErrValidation = errors.New("validation failed")

	// Credential store.
	ErrDuplicateUser   = errors.New("an account with this email already exists")
	ErrUserNotFound    = errors.New("no account found with this email")
	ErrAlreadyVerified = errors.New("account is already verified")

	// Login and sessions.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotVerified = fmtWrap(ErrInvalidCredentials, "please verify your account first")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrSessionExpired     = fmtWrap(ErrNotLoggedIn, "session expired, please log in again")

	// Verification and reset slots.
	ErrNoPendingVerification = errors.New("no pending verification for this email")
	ErrInvalidCode           = errors.New("please enter a valid 6-digit code")
	ErrResendTooSoon         = errors.New("please wait before requesting a new code")
	ErrNoResetInProgress     = errors.New("no password reset in progress")
	ErrPasswordsMismatch     = errors.New("passwords do not match")

	// Notes and alarms.
	ErrEmptyNote          = errors.New("please enter a title or content")
	ErrNoteNotFound       = errors.New("note not found")
	ErrAlarmTitleRequired = errors.New("please enter an alarm title")
	ErrAlarmInPast        = errors.New("alarm time must be in the future")

	ErrInvalidPreference = errors.New("invalid preference value")
)

// wrappedError keeps the parent matchable with errors.Is while giving the
// child its own message.
type wrappedError struct {
	parent error
	msg    string
}

func fmtWrap(parent error, msg string) error {
	return &wrappedError{parent: parent, msg: msg}
}

func (e *wrappedError) Error() string { return e.msg }
func (e *wrappedError) Unwrap() error { return e.parent }

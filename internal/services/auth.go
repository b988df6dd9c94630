package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/nero7007/Professional-To-Do-List/internal/common"
	"github.com/nero7007/Professional-To-Do-List/internal/models"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/alarms"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/notes"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/sessions"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/slots"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/users"
)

// AuthService manages accounts, verification, password reset and the
// current session.
//
// Contract:
//   - Register validates input, rejects duplicate emails, stores an
//     unverified user and opens the pending verification slot.
//   - VerifyAccount accepts any well-formed 6-digit code while a pending
//     verification exists for the email.
//   - Login fails with common.ErrInvalidCredentials (or the more specific
//     common.ErrAccountNotVerified) and otherwise makes a new session current.
//   - CheckSession fails closed: anything but a live session pointing at an
//     existing user logs out and returns an error.
//   - Passwords are never retained; callers may wipe their buffers after use.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*Registration, error)
	VerifyAccount(ctx context.Context, email, code string) error
	ResendVerificationCode(ctx context.Context, email string) (string, error)
	Login(ctx context.Context, email string, password []byte) (*models.Profile, error)
	CheckSession(ctx context.Context) (*models.Profile, error)
	Logout(ctx context.Context) error
	ResetPasswordRequest(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, newPassword, confirm []byte) error
	DeleteAccount(ctx context.Context) error
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  []byte
}

// Registration is the outcome of a successful Register. Code is the
// verification code that would be e-mailed.
type Registration struct {
	User models.Profile
	Code string
}

type authService struct {
	users    users.Repository
	sessions sessions.Repository
	slots    slots.Repository
	notes    notes.Repository
	alarms   alarms.Repository
	opts     Options
}

func NewAuthService(
	u users.Repository,
	s sessions.Repository,
	sl slots.Repository,
	n notes.Repository,
	a alarms.Repository,
	opts Options,
) AuthService {
	opts = opts.withDefaults()
	opts.Logger = opts.Logger.With("component", "auth")
	return &authService{users: u, sessions: s, slots: sl, notes: n, alarms: a, opts: opts}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r := []rune(strings.ToLower(s))
	if len(r) == 0 {
		return ""
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func (a *authService) Register(ctx context.Context, in RegisterInput) (*Registration, error) {
	form := registrationForm{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     normalizeEmail(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Password:  string(in.Password),
	}
	if err := check(form); err != nil {
		return nil, err
	}

	code, err := a.opts.NewCode()
	if err != nil {
		return nil, err
	}
	digest, err := a.opts.Digester.Digest(in.Password)
	if err != nil {
		return nil, err
	}

	now := a.opts.Now()
	user := models.User{
		ID:               a.opts.NewID(),
		FirstName:        capitalize(form.FirstName),
		LastName:         capitalize(form.LastName),
		Email:            form.Email,
		Phone:            form.Phone,
		PasswordDigest:   digest,
		VerificationCode: code,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = a.users.Update(ctx, func(all []models.User) ([]models.User, error) {
		if users.FindByEmail(all, user.Email) >= 0 {
			return nil, common.ErrDuplicateUser
		}
		return append(all, user), nil
	})
	if err != nil {
		return nil, err
	}

	if err := a.slots.Put(ctx, slots.Verification, models.Slot{Email: user.Email, Code: code, Timestamp: now}); err != nil {
		return nil, fmt.Errorf("saving pending verification: %w", err)
	}

	a.opts.Logger.Info(ctx, "user registered", "user_id", user.ID)
	return &Registration{User: user.Profile(), Code: code}, nil
}

func (a *authService) VerifyAccount(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)

	pending, err := a.slots.Get(ctx, slots.Verification)
	if err != nil {
		return err
	}
	if pending == nil || !strings.EqualFold(pending.Email, email) {
		return common.ErrNoPendingVerification
	}

	// The issued code is not compared: any well-formed code
	// completes a pending verification.
	if !validCode(strings.TrimSpace(code)) {
		return common.ErrInvalidCode
	}

	now := a.opts.Now()
	err = a.users.Update(ctx, func(all []models.User) ([]models.User, error) {
		i := users.FindByEmail(all, email)
		if i < 0 {
			return nil, common.ErrUserNotFound
		}
		all[i].IsVerified = true
		all[i].UpdatedAt = now
		return all, nil
	})
	if err != nil {
		return err
	}

	if err := a.slots.Clear(ctx, slots.Verification); err != nil {
		return fmt.Errorf("clearing pending verification: %w", err)
	}
	a.opts.Logger.Info(ctx, "account verified", "email", email)
	return nil
}

func (a *authService) ResendVerificationCode(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	now := a.opts.Now()

	pending, err := a.slots.Get(ctx, slots.Verification)
	if err != nil {
		return "", err
	}
	if pending != nil && strings.EqualFold(pending.Email, email) && now.Sub(pending.Timestamp) < a.opts.ResendCooldown {
		return "", common.ErrResendTooSoon
	}

	code, err := a.opts.NewCode()
	if err != nil {
		return "", err
	}

	err = a.users.Update(ctx, func(all []models.User) ([]models.User, error) {
		i := users.FindByEmail(all, email)
		if i < 0 {
			return nil, common.ErrUserNotFound
		}
		if all[i].IsVerified {
			return nil, common.ErrAlreadyVerified
		}
		all[i].VerificationCode = code
		all[i].UpdatedAt = now
		return all, nil
	})
	if err != nil {
		return "", err
	}

	if err := a.slots.Put(ctx, slots.Verification, models.Slot{Email: email, Code: code, Timestamp: now}); err != nil {
		return "", fmt.Errorf("saving pending verification: %w", err)
	}
	a.opts.Logger.Debug(ctx, "verification code reissued", "email", email)
	return code, nil
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.Profile, error) {
	email = normalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	all, err := a.users.List(ctx)
	if err != nil {
		return nil, err
	}
	i := users.FindByEmail(all, email)
	if i < 0 || !a.opts.Digester.Matches(all[i].PasswordDigest, password) {
		a.opts.Logger.Warn(ctx, "login rejected", "email", email)
		return nil, common.ErrInvalidCredentials
	}
	user := all[i]
	if !user.IsVerified {
		return nil, common.ErrAccountNotVerified
	}

	now := a.opts.Now()
	session := models.Session{
		ID:        a.opts.NewID(),
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(a.opts.SessionTTL),
	}

	err = a.sessions.Update(ctx, func(all []models.Session) ([]models.Session, error) {
		return append(sessions.RemoveExpired(all, now), session), nil
	})
	if err != nil {
		return nil, err
	}
	if err := a.sessions.SetCurrent(ctx, session.ID); err != nil {
		return nil, err
	}

	a.opts.Logger.Info(ctx, "user logged in", "user_id", user.ID, "session_id", session.ID)
	p := user.Profile()
	return &p, nil
}

func (a *authService) CheckSession(ctx context.Context) (*models.Profile, error) {
	id, err := a.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, common.ErrNotLoggedIn
	}

	user, err := a.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		a.opts.Logger.Info(ctx, "evicting stale session", "session_id", id)
		if err := a.Logout(ctx); err != nil {
			return nil, err
		}
		return nil, common.ErrSessionExpired
	}

	p := user.Profile()
	return &p, nil
}

// resolve returns the user owning a live session, or nil when the session
// is unknown, expired or dangling.
func (a *authService) resolve(ctx context.Context, sessionID string) (*models.User, error) {
	all, err := a.sessions.List(ctx)
	if err != nil {
		return nil, err
	}
	i := sessions.FindByID(all, sessionID)
	if i < 0 || all[i].Expired(a.opts.Now()) {
		return nil, nil
	}

	us, err := a.users.List(ctx)
	if err != nil {
		return nil, err
	}
	j := users.FindByID(us, all[i].UserID)
	if j < 0 {
		return nil, nil
	}
	return &us[j], nil
}

func (a *authService) Logout(ctx context.Context) error {
	id, err := a.sessions.Current(ctx)
	if err != nil {
		return err
	}
	if id == "" {
		return nil
	}

	err = a.sessions.Update(ctx, func(all []models.Session) ([]models.Session, error) {
		kept := all[:0]
		for _, s := range all {
			if s.ID != id {
				kept = append(kept, s)
			}
		}
		return kept, nil
	})
	if err != nil {
		return err
	}
	return a.sessions.ClearCurrent(ctx)
}

func (a *authService) ResetPasswordRequest(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return "", err
	}

	all, err := a.users.List(ctx)
	if err != nil {
		return "", err
	}
	if users.FindByEmail(all, email) < 0 {
		return "", common.ErrUserNotFound
	}

	code, err := a.opts.NewCode()
	if err != nil {
		return "", err
	}
	if err := a.slots.Put(ctx, slots.Reset, models.Slot{Email: email, Code: code, Timestamp: a.opts.Now()}); err != nil {
		return "", fmt.Errorf("saving password reset: %w", err)
	}

	a.opts.Logger.Info(ctx, "password reset requested", "email", email)
	return code, nil
}

func (a *authService) ResetPassword(ctx context.Context, newPassword, confirm []byte) error {
	if string(newPassword) != string(confirm) {
		return common.ErrPasswordsMismatch
	}
	if err := ValidatePassword(string(newPassword)); err != nil {
		return err
	}

	pending, err := a.slots.Get(ctx, slots.Reset)
	if err != nil {
		return err
	}
	if pending == nil || pending.Email == "" {
		return common.ErrNoResetInProgress
	}

	digest, err := a.opts.Digester.Digest(newPassword)
	if err != nil {
		return err
	}

	now := a.opts.Now()
	err = a.users.Update(ctx, func(all []models.User) ([]models.User, error) {
		i := users.FindByEmail(all, pending.Email)
		if i < 0 {
			return nil, common.ErrUserNotFound
		}
		all[i].PasswordDigest = digest
		all[i].UpdatedAt = now
		return all, nil
	})
	if err != nil {
		return err
	}

	if err := a.slots.Clear(ctx, slots.Reset); err != nil {
		return fmt.Errorf("clearing password reset: %w", err)
	}
	a.opts.Logger.Info(ctx, "password reset completed", "email", pending.Email)
	return nil
}

func (a *authService) DeleteAccount(ctx context.Context) error {
	profile, err := a.CheckSession(ctx)
	if err != nil {
		return err
	}

	err = a.users.Update(ctx, func(all []models.User) ([]models.User, error) {
		i := users.FindByID(all, profile.ID)
		if i < 0 {
			return all, nil
		}
		return append(all[:i], all[i+1:]...), nil
	})
	if err != nil {
		return err
	}

	err = a.sessions.Update(ctx, func(all []models.Session) ([]models.Session, error) {
		kept := all[:0]
		for _, s := range all {
			if s.UserID != profile.ID {
				kept = append(kept, s)
			}
		}
		return kept, nil
	})
	if err != nil {
		return err
	}

	if err := errors.Join(
		a.sessions.ClearCurrent(ctx),
		a.notes.DeleteAll(ctx, profile.ID),
		a.alarms.DeleteAll(ctx, profile.ID),
	); err != nil {
		return fmt.Errorf("removing account data: %w", err)
	}

	a.opts.Logger.Info(ctx, "account deleted", "user_id", profile.ID)
	return nil
}

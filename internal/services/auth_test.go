package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nero7007/Professional-To-Do-List/internal/common"
	"github.com/nero7007/Professional-To-Do-List/internal/cryptox"
	"github.com/nero7007/Professional-To-Do-List/internal/models"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/slots"
)

func TestRegister_StoresUnverifiedUserAndPendingSlot(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	reg, err := e.auth.Register(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, "123456", reg.Code)
	assert.Equal(t, "Sara", reg.User.FirstName)
	assert.Equal(t, "Ali", reg.User.LastName)
	assert.Equal(t, "sara@example.com", reg.User.Email)
	assert.False(t, reg.User.IsVerified)

	all, err := e.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, cryptox.Checksum("Abcdef1@"), all[0].PasswordDigest)
	assert.Equal(t, "123456", all[0].VerificationCode)
	assert.Equal(t, e.clock.Now(), all[0].CreatedAt)

	slot, err := e.slots.Get(ctx, slots.Verification)
	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.Equal(t, "sara@example.com", slot.Email)
	assert.Equal(t, "123456", slot.Code)
}

func TestRegister_DuplicateEmailIsCaseInsensitive(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.auth.Register(ctx, validInput())
	require.NoError(t, err)

	again := validInput()
	again.Email = "SARA@EXAMPLE.COM"
	_, err = e.auth.Register(ctx, again)
	require.ErrorIs(t, err, common.ErrDuplicateUser)

	all, err := e.users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRegister_ValidationRules(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(in *RegisterInput)
		field string
		rule  string
	}{
		{"short first name", func(in *RegisterInput) { in.FirstName = "Al" }, "firstName", "min"},
		{"long last name", func(in *RegisterInput) { in.LastName = "Abcdefghijklmnop" }, "lastName", "max"},
		{"digits in name", func(in *RegisterInput) { in.FirstName = "Sara1" }, "firstName", "personname"},
		{"bad email", func(in *RegisterInput) { in.Email = "sara@example" }, "email", "simpleemail"},
		{"email with space", func(in *RegisterInput) { in.Email = "sa ra@example.com" }, "email", "simpleemail"},
		{"phone without plus", func(in *RegisterInput) { in.Phone = "201001234567" }, "phone", "phone"},
		{"phone leading zero", func(in *RegisterInput) { in.Phone = "+0123" }, "phone", "phone"},
		{"password length 7", func(in *RegisterInput) { in.Password = []byte("Abcde1@") }, "password", "min"},
		{"password length 16", func(in *RegisterInput) { in.Password = []byte("Abcdefghijkl12@#") }, "password", "max"},
		{"no upper", func(in *RegisterInput) { in.Password = []byte("abcdef1@") }, "password", "pwupper"},
		{"no lower", func(in *RegisterInput) { in.Password = []byte("ABCDEF1@") }, "password", "pwlower"},
		{"no digit", func(in *RegisterInput) { in.Password = []byte("Abcdefg@") }, "password", "pwdigit"},
		{"special outside set", func(in *RegisterInput) { in.Password = []byte("Abcdef1!") }, "password", "pwspecial"},
		{"first failure wins", func(in *RegisterInput) {
			in.LastName = "x"
			in.Password = []byte("weak")
		}, "lastName", "min"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv(t)
			in := validInput()
			tc.edit(&in)

			_, err := e.auth.Register(context.Background(), in)
			require.ErrorIs(t, err, common.ErrValidation)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, tc.rule, verr.Rule)
			assert.NotEmpty(t, verr.Message)
		})
	}
}

func TestRegister_AcceptsArabicNames(t *testing.T) {
	e := newEnv(t)
	in := validInput()
	in.FirstName = "سارة"
	in.LastName = "عبد الله"

	reg, err := e.auth.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "سارة", reg.User.FirstName)
}

func TestValidatePassword_Boundaries(t *testing.T) {
	require.NoError(t, ValidatePassword("Abcdef1@"))
	require.NoError(t, ValidatePassword("Abcdefghijk1@#%"))
	require.Error(t, ValidatePassword("Abcde1@"))
	require.Error(t, ValidatePassword("Abcdefghijkl1@#%"))
}

func TestVerifyAccount_AcceptsAnyWellFormedCode(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, err := e.auth.Register(ctx, validInput())
	require.NoError(t, err)

	require.NoError(t, e.auth.VerifyAccount(ctx, "SARA@example.com", "987654"))

	all, err := e.users.List(ctx)
	require.NoError(t, err)
	assert.True(t, all[0].IsVerified)

	slot, err := e.slots.Get(ctx, slots.Verification)
	require.NoError(t, err)
	assert.Nil(t, slot)

	err = e.auth.VerifyAccount(ctx, "sara@example.com", "123456")
	require.ErrorIs(t, err, common.ErrNoPendingVerification)
}

func TestVerifyAccount_Failures(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	err := e.auth.VerifyAccount(ctx, "sara@example.com", "123456")
	require.ErrorIs(t, err, common.ErrNoPendingVerification)

	_, err = e.auth.Register(ctx, validInput())
	require.NoError(t, err)

	err = e.auth.VerifyAccount(ctx, "omar@example.com", "123456")
	require.ErrorIs(t, err, common.ErrNoPendingVerification)

	for _, bad := range []string{"", "12345", "1234567", "12a456", "abcdef"} {
		err = e.auth.VerifyAccount(ctx, "sara@example.com", bad)
		require.ErrorIs(t, err, common.ErrInvalidCode, "code %q", bad)
	}
}

func TestResendVerificationCode_Cooldown(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, err := e.auth.Register(ctx, validInput())
	require.NoError(t, err)

	_, err = e.auth.ResendVerificationCode(ctx, "sara@example.com")
	require.ErrorIs(t, err, common.ErrResendTooSoon)

	e.clock.Advance(DefaultResendCooldown)
	code, err := e.auth.ResendVerificationCode(ctx, "sara@example.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", code)

	slot, err := e.slots.Get(ctx, slots.Verification)
	require.NoError(t, err)
	assert.Equal(t, e.clock.Now(), slot.Timestamp)

	_, err = e.auth.ResendVerificationCode(ctx, "nobody@example.com")
	require.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestResendVerificationCode_AlreadyVerified(t *testing.T) {
	e := newEnv(t)
	e.registerVerifyLogin(t)

	_, err := e.auth.ResendVerificationCode(context.Background(), "sara@example.com")
	require.ErrorIs(t, err, common.ErrAlreadyVerified)
}

func TestLogin_Failures(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, err := e.auth.Register(ctx, validInput())
	require.NoError(t, err)

	_, err = e.auth.Login(ctx, "sara@example.com", []byte("Abcdef1@"))
	require.ErrorIs(t, err, common.ErrAccountNotVerified)
	require.ErrorIs(t, err, common.ErrInvalidCredentials)

	require.NoError(t, e.auth.VerifyAccount(ctx, "sara@example.com", "111111"))

	_, err = e.auth.Login(ctx, "sara@example.com", []byte("Abcdef1#"))
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	require.False(t, errors.Is(err, common.ErrAccountNotVerified))

	_, err = e.auth.Login(ctx, "omar@example.com", []byte("Abcdef1@"))
	require.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = e.auth.Login(ctx, "not-an-email", []byte("Abcdef1@"))
	require.ErrorIs(t, err, common.ErrValidation)

	_, err = e.auth.CheckSession(ctx)
	require.ErrorIs(t, err, common.ErrNotLoggedIn)
}

func TestLogin_CreatesSevenDaySession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.registerVerifyLogin(t)
	assert.Equal(t, "sara@example.com", p.Email)

	ss, err := e.sessions.List(ctx)
	require.NoError(t, err)
	require.Len(t, ss, 1)
	assert.Equal(t, p.ID, ss[0].UserID)
	assert.Equal(t, 7*24*time.Hour, ss[0].ExpiresAt.Sub(ss[0].CreatedAt))

	cur, err := e.sessions.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, ss[0].ID, cur)

	got, err := e.auth.CheckSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestCheckSession_ExpiredIsEvicted(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.registerVerifyLogin(t)

	e.clock.Advance(7 * 24 * time.Hour)
	_, err := e.auth.CheckSession(ctx)
	require.NoError(t, err, "a session is valid up to its expiry instant")

	e.clock.Advance(time.Second)
	_, err = e.auth.CheckSession(ctx)
	require.ErrorIs(t, err, common.ErrSessionExpired)
	require.ErrorIs(t, err, common.ErrNotLoggedIn)

	ss, err := e.sessions.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ss)

	cur, err := e.sessions.Current(ctx)
	require.NoError(t, err)
	assert.Empty(t, cur)
}

func TestCheckSession_DanglingUserIsEvicted(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.registerVerifyLogin(t)

	require.NoError(t, e.users.Update(ctx, func([]models.User) ([]models.User, error) { return nil, nil }))

	_, err := e.auth.CheckSession(ctx)
	require.ErrorIs(t, err, common.ErrSessionExpired)

	ss, err := e.sessions.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ss)
}

func TestCheckSession_UnknownSessionID(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	require.NoError(t, e.sessions.SetCurrent(ctx, "ghost"))

	_, err := e.auth.CheckSession(ctx)
	require.ErrorIs(t, err, common.ErrSessionExpired)

	cur, err := e.sessions.Current(ctx)
	require.NoError(t, err)
	assert.Empty(t, cur)
}

func TestLogin_PrunesOtherExpiredSessions(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.registerVerifyLogin(t)

	e.clock.Advance(8 * 24 * time.Hour)
	_, err := e.auth.Login(ctx, "sara@example.com", []byte("Abcdef1@"))
	require.NoError(t, err)

	ss, err := e.sessions.List(ctx)
	require.NoError(t, err)
	require.Len(t, ss, 1)
	assert.Equal(t, e.clock.Now(), ss[0].CreatedAt)
}

func TestLogout(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	require.NoError(t, e.auth.Logout(ctx))

	e.registerVerifyLogin(t)
	require.NoError(t, e.auth.Logout(ctx))

	ss, err := e.sessions.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ss)

	_, err = e.auth.CheckSession(ctx)
	require.ErrorIs(t, err, common.ErrNotLoggedIn)
}

func TestResetPassword_Flow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.registerVerifyLogin(t)

	_, err := e.auth.ResetPasswordRequest(ctx, "omar@example.com")
	require.ErrorIs(t, err, common.ErrUserNotFound)

	_, err = e.auth.ResetPasswordRequest(ctx, "bad")
	require.ErrorIs(t, err, common.ErrValidation)

	err = e.auth.ResetPassword(ctx, []byte("Newpass1#"), []byte("Newpass1#"))
	require.ErrorIs(t, err, common.ErrNoResetInProgress)

	code, err := e.auth.ResetPasswordRequest(ctx, "Sara@example.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", code)

	err = e.auth.ResetPassword(ctx, []byte("Newpass1#"), []byte("Newpass1$"))
	require.ErrorIs(t, err, common.ErrPasswordsMismatch)

	err = e.auth.ResetPassword(ctx, []byte("newpass"), []byte("newpass"))
	require.ErrorIs(t, err, common.ErrValidation)

	require.NoError(t, e.auth.ResetPassword(ctx, []byte("Newpass1#"), []byte("Newpass1#")))

	slot, err := e.slots.Get(ctx, slots.Reset)
	require.NoError(t, err)
	assert.Nil(t, slot)

	_, err = e.auth.Login(ctx, "sara@example.com", []byte("Abcdef1@"))
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	_, err = e.auth.Login(ctx, "sara@example.com", []byte("Newpass1#"))
	require.NoError(t, err)
}

func TestDeleteAccount_RemovesEverythingOwned(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.registerVerifyLogin(t)

	_, err := e.note.Create(ctx, p.ID, models.NoteInput{Title: "t", Content: "c"})
	require.NoError(t, err)
	_, err = e.alarm.Set(ctx, p.ID, "ping", e.clock.Now().Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, e.auth.DeleteAccount(ctx))

	all, err := e.users.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	keys, err := e.store.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, keys, common.NotesKey(p.ID))
	assert.NotContains(t, keys, common.AlarmsKey(p.ID))
	assert.NotContains(t, keys, common.KeyCurrentSession)

	err = e.auth.DeleteAccount(ctx)
	require.ErrorIs(t, err, common.ErrNotLoggedIn)
}

func TestAuth_BcryptDigester(t *testing.T) {
	e := newEnv(t)
	e.auth = NewAuthService(e.users, e.sessions, e.slots, e.notes, e.alarms, Options{
		Now:      e.clock.Now,
		Digester: cryptox.BcryptDigester{Cost: 4},
	})
	ctx := context.Background()

	reg, err := e.auth.Register(ctx, validInput())
	require.NoError(t, err)
	require.NoError(t, e.auth.VerifyAccount(ctx, "sara@example.com", reg.Code))

	_, err = e.auth.Login(ctx, "sara@example.com", []byte("Abcdef1@"))
	require.NoError(t, err)
}

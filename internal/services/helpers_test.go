package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nero7007/Professional-To-Do-List/internal/models"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/alarms"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/kv"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/notes"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/prefs"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/sessions"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/slots"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/users"
)

// clock is a settable time source for tests.
type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type env struct {
	store    *kv.MemoryStore
	clock    *clock
	users    *users.KVRepository
	sessions *sessions.KVRepository
	slots    *slots.KVRepository
	notes    *notes.KVRepository
	alarms   *alarms.KVRepository
	prefs    *prefs.KVRepository

	auth   AuthService
	note   NoteService
	alarm  AlarmService
	draft  DraftService
	prefer PreferenceService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := kv.NewMemoryStore()
	c := &clock{t: time.Date(2026, 4, 15, 10, 30, 0, 0, time.UTC)}

	seq := 0
	opts := Options{
		Now: c.Now,
		NewID: func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		},
		NewCode: func() (string, error) { return "123456", nil },
	}

	e := &env{
		store:    store,
		clock:    c,
		users:    users.NewKVRepository(store),
		sessions: sessions.NewKVRepository(store),
		slots:    slots.NewKVRepository(store),
		notes:    notes.NewKVRepository(store),
		alarms:   alarms.NewKVRepository(store),
		prefs:    prefs.NewKVRepository(store),
	}
	e.auth = NewAuthService(e.users, e.sessions, e.slots, e.notes, e.alarms, opts)
	e.note = NewNoteService(e.notes, opts)
	e.alarm = NewAlarmService(e.alarms, opts)
	e.draft = NewDraftService(e.prefs, opts)
	e.prefer = NewPreferenceService(e.prefs)
	return e
}

func validInput() RegisterInput {
	return RegisterInput{
		FirstName: "sara",
		LastName:  "ALI",
		Email:     "Sara@Example.com",
		Phone:     "+201001234567",
		Password:  []byte("Abcdef1@"),
	}
}

// registerVerifyLogin creates a verified, logged-in account and returns its
// profile.
func (e *env) registerVerifyLogin(t *testing.T) *models.Profile {
	t.Helper()
	ctx := context.Background()
	_, err := e.auth.Register(ctx, validInput())
	require.NoError(t, err)
	require.NoError(t, e.auth.VerifyAccount(ctx, "sara@example.com", "000000"))
	p, err := e.auth.Login(ctx, "sara@example.com", []byte("Abcdef1@"))
	require.NoError(t, err)
	return p
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/nero7007/Professional-To-Do-List/internal/config"
	"github.com/nero7007/Professional-To-Do-List/internal/cryptox"
	"github.com/nero7007/Professional-To-Do-List/internal/logging"
	"github.com/nero7007/Professional-To-Do-List/internal/models"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/alarms"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/kv"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/notes"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/prefs"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/sessions"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/slots"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/users"
	"github.com/nero7007/Professional-To-Do-List/internal/services"
)

type App struct {
	config *config.Config
	store  kv.Store
	log    logging.Logger

	authService  services.AuthService
	noteService  services.NoteService
	alarmService services.AlarmService
	draftService services.DraftService
	prefService  services.PreferenceService

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time

	mu      sync.RWMutex
	profile *models.Profile
	outMu   sync.Mutex

	// shell-only list state
	browser *services.NoteBrowser
}

// NewApp opens the configured store and wires the services on top of it.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	store, err := kv.Open(ctx, kv.Options{
		Driver:     c.Storage.Driver,
		DSN:        c.Storage.DSN,
		SyncWrites: c.Badger.SyncWrites,
		Logger:     log,
	})
	if err != nil {
		log.Error(ctx, "error opening storage", "driver", c.Storage.Driver, "error", err)
		return nil, err
	}

	app, err := newApp(c, store, log, in, out)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return app, nil
}

func newApp(c *config.Config, store kv.Store, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	digester, err := cryptox.NewDigester(c.Digest)
	if err != nil {
		return nil, err
	}

	opts := services.Options{
		SessionTTL:     c.SessionTTL,
		ResendCooldown: c.ResendCooldown,
		Digester:       digester,
		Logger:         log,
	}

	notesRepo := notes.NewKVRepository(store)
	alarmsRepo := alarms.NewKVRepository(store)
	prefsRepo := prefs.NewKVRepository(store)

	return &App{
		config: c,
		store:  store,
		log:    log,
		authService: services.NewAuthService(
			users.NewKVRepository(store),
			sessions.NewKVRepository(store),
			slots.NewKVRepository(store),
			notesRepo,
			alarmsRepo,
			opts,
		),
		noteService:  services.NewNoteService(notesRepo, opts),
		alarmService: services.NewAlarmService(alarmsRepo, opts),
		draftService: services.NewDraftService(prefsRepo, opts),
		prefService:  services.NewPreferenceService(prefsRepo),
		reader:       bufio.NewReader(in),
		out:          out,
		now:          time.Now,
	}, nil
}

func (a *App) Close() error {
	return a.store.Close()
}

func (a *App) isLoggedIn() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.profile != nil
}

func (a *App) currentProfile() *models.Profile {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.profile
}

func (a *App) setProfile(p *models.Profile) {
	a.mu.Lock()
	a.profile = p
	a.mu.Unlock()
}

// requireLogin resolves the persisted session into the current profile.
func (a *App) requireLogin(ctx context.Context) (*models.Profile, error) {
	p, err := a.authService.CheckSession(ctx)
	if err != nil {
		a.setProfile(nil)
		return nil, err
	}
	a.setProfile(p)
	return p, nil
}

func (a *App) println(args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) success(msg string) { a.println(banner(bannerSuccess, msg)) }
func (a *App) info(msg string)    { a.println(banner(bannerInfo, msg)) }
func (a *App) warn(msg string)    { a.println(banner(bannerWarning, msg)) }

package cli

import (
	"context"

	"golang.org/x/sync/errgroup"
)

func (a *App) status() string {
	if p := a.currentProfile(); p != nil {
		return " (" + p.Email + ")"
	}
	return ""
}

// Shell restores the persisted session, if any, then runs the REPL and the
// reminder watcher until the user exits.
func (a *App) Shell(ctx context.Context) error {
	a.info("Professional To-Do List (type 'help' for commands)")
	if p, err := a.authService.CheckSession(ctx); err == nil {
		a.setProfile(p)
		a.println("Logged in as " + p.Email)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.StartReminderWatcher(gctx, a.config.ReminderInterval)
	})
	g.Go(func() error {
		defer cancel()
		runREPL(gctx, a, a.status, a.reader)
		return nil
	})
	return g.Wait()
}

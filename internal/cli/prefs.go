package cli

import (
	"context"
	"strings"

	"github.com/nero7007/Professional-To-Do-List/internal/models"
)

func (a *App) ShowDraft(ctx context.Context) error {
	d, err := a.draftService.Load(ctx)
	if err != nil {
		return err
	}
	if d == nil {
		a.println("No saved draft")
		return nil
	}
	a.printf("%s\n%s\n%s\n", styles.Muted.Render("saved "+d.Timestamp.Local().Format(timeLayout)), styles.Title.Render(d.Title), d.Content)
	return nil
}

func (a *App) ClearDraft(ctx context.Context) error {
	if err := a.draftService.Clear(ctx); err != nil {
		return err
	}
	a.success("Draft discarded")
	return nil
}

// Theme shows the stored theme, or sets it to light, dark or the other one
// ("toggle").
func (a *App) Theme(ctx context.Context, args []string) error {
	var (
		t   models.Theme
		err error
	)
	switch arg := strings.ToLower(strings.Join(args, "")); arg {
	case "":
		t, err = a.prefService.Theme(ctx)
	case "toggle":
		t, err = a.prefService.ToggleTheme(ctx)
	default:
		t = models.Theme(arg)
		err = a.prefService.SetTheme(ctx, t)
	}
	if err != nil {
		return err
	}
	a.println("Theme: " + string(t))
	return nil
}

func (a *App) Language(ctx context.Context, args []string) error {
	var (
		l   models.Language
		err error
	)
	if arg := strings.ToLower(strings.Join(args, "")); arg == "" {
		l, err = a.prefService.Language(ctx)
	} else {
		l = models.Language(arg)
		err = a.prefService.SetLanguage(ctx, l)
	}
	if err != nil {
		return err
	}
	a.println("Language: " + string(l))
	return nil
}

package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/nero7007/Professional-To-Do-List/internal/models"
	"github.com/nero7007/Professional-To-Do-List/internal/services"
	"github.com/nero7007/Professional-To-Do-List/internal/timex"
)

const timeLayout = "2006-01-02 15:04"

// listQuery is the one-shot form of the browser state.
type listQuery struct {
	Search   string
	Filter   string
	Sort     string
	Page     int
	PageSize int
}

// AddNote creates a note from in, or composes one interactively when in is
// nil. While composing, the draft is autosaved after a pause in typing.
func (a *App) AddNote(ctx context.Context, in *models.NoteInput) error {
	p, err := a.requireLogin(ctx)
	if err != nil {
		return err
	}

	interactive := in == nil
	if interactive {
		composed, err := a.composeNote(ctx)
		if err != nil {
			return err
		}
		in = &composed
	}

	n, err := a.noteService.Create(ctx, p.ID, *in)
	if err != nil {
		return err
	}
	if interactive {
		if err := a.draftService.Clear(ctx); err != nil {
			a.log.Warn(ctx, "error clearing draft", "error", err)
		}
	}
	a.reloadBrowser(ctx, p.ID)
	a.success(fmt.Sprintf("Note added (%s)", n.ID))
	return nil
}

// composeNote reads a title and a multi-line body. A saved draft is offered
// for restore first.
func (a *App) composeNote(ctx context.Context) (models.NoteInput, error) {
	d, err := a.draftService.Load(ctx)
	if err != nil {
		return models.NoteInput{}, err
	}
	if d != nil {
		a.info(fmt.Sprintf("Unsaved draft from %s:\n%s\n%s", d.Timestamp.Local().Format(timeLayout), d.Title, d.Content))
		ok, err := confirm(a.reader, "Use this draft?", a.out)
		if err != nil {
			return models.NoteInput{}, err
		}
		if ok {
			return models.NoteInput{Title: d.Title, Content: d.Content}, nil
		}
	}

	var (
		mu      sync.Mutex
		title   string
		content string
	)
	saver := timex.NewDebouncer(a.config.AutosaveDelay, func() {
		mu.Lock()
		t, c := title, content
		mu.Unlock()
		if _, err := a.draftService.Save(ctx, t, c); err != nil {
			a.log.Warn(ctx, "error saving draft", "error", err)
			return
		}
		a.log.Debug(ctx, "draft saved")
	})

	t, err := getSimpleText(a.reader, "Title (optional)", a.out)
	if err != nil {
		return models.NoteInput{}, err
	}
	mu.Lock()
	title = t
	mu.Unlock()
	saver.Trigger()

	c, err := GetMultiline(a.reader, "Content", a.out, func(text string) {
		mu.Lock()
		content = text
		mu.Unlock()
		saver.Trigger()
	})
	if err != nil {
		// keep what was typed for next time
		saver.Flush()
		return models.NoteInput{}, err
	}
	saver.Stop()

	return models.NoteInput{Title: t, Content: c}, nil
}

func (a *App) EditNote(ctx context.Context, id string, in *models.NoteInput) error {
	p, err := a.requireLogin(ctx)
	if err != nil {
		return err
	}
	cur, err := a.noteService.Get(ctx, p.ID, id)
	if err != nil {
		return err
	}

	if in == nil {
		title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", cur.Title), a.out)
		if err != nil {
			return err
		}
		if title == "" {
			title = cur.Title
		}
		content, err := GetMultiline(a.reader, "Content (empty keeps the current text)", a.out, nil)
		if err != nil {
			return err
		}
		if content == "" {
			content = cur.Content
		}
		in = &models.NoteInput{Title: title, Content: content, Completed: cur.Completed}
	}

	if _, err := a.noteService.Update(ctx, p.ID, id, *in); err != nil {
		return err
	}
	a.reloadBrowser(ctx, p.ID)
	a.success("Note updated")
	return nil
}

// notePatch names the fields to change; nil fields keep their value.
type notePatch struct {
	Title     *string
	Content   *string
	Completed *bool
}

func (a *App) PatchNote(ctx context.Context, id string, p notePatch) error {
	prof, err := a.requireLogin(ctx)
	if err != nil {
		return err
	}
	cur, err := a.noteService.Get(ctx, prof.ID, id)
	if err != nil {
		return err
	}
	in := models.NoteInput{Title: cur.Title, Content: cur.Content, Completed: cur.Completed}
	if p.Title != nil {
		in.Title = *p.Title
	}
	if p.Content != nil {
		in.Content = *p.Content
	}
	if p.Completed != nil {
		in.Completed = *p.Completed
	}
	return a.EditNote(ctx, id, &in)
}

func (a *App) ToggleNote(ctx context.Context, id string) error {
	p, err := a.requireLogin(ctx)
	if err != nil {
		return err
	}
	n, err := a.noteService.Toggle(ctx, p.ID, id)
	if err != nil {
		return err
	}
	a.reloadBrowser(ctx, p.ID)
	if n.Completed {
		a.success("Marked as completed: " + n.Title)
	} else {
		a.success("Marked as pending: " + n.Title)
	}
	return nil
}

func (a *App) DeleteNotes(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("usage: delete <id> [<id>...]")
	}
	p, err := a.requireLogin(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 1 {
		if err := a.noteService.Delete(ctx, p.ID, ids[0]); err != nil {
			return err
		}
		a.reloadBrowser(ctx, p.ID)
		a.success("Note deleted")
		return nil
	}
	n, err := a.noteService.DeleteMany(ctx, p.ID, ids)
	if err != nil {
		return err
	}
	a.reloadBrowser(ctx, p.ID)
	a.success(fmt.Sprintf("%d notes deleted", n))
	return nil
}

func (a *App) ShowNote(ctx context.Context, id string) error {
	p, err := a.requireLogin(ctx)
	if err != nil {
		return err
	}
	n, err := a.noteService.Get(ctx, p.ID, id)
	if err != nil {
		return err
	}

	status := "pending"
	if n.Completed {
		status = "completed"
	}
	a.printf("%s\n%s\n\n%s\n",
		styles.Title.Render(n.Title),
		styles.Muted.Render(fmt.Sprintf("%s · %s · created %s · updated %s",
			n.ID, status, n.CreatedAt.Local().Format(timeLayout), n.UpdatedAt.Local().Format(timeLayout))),
		n.Content,
	)
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	p, err := a.requireLogin(ctx)
	if err != nil {
		return err
	}
	st, err := a.noteService.Stats(ctx, p.ID)
	if err != nil {
		return err
	}
	a.printf("Total: %d  Completed: %d  Pending: %d  Today: %d\n", st.Total, st.Completed, st.Pending, st.Today)
	return nil
}

// ListNotes prints one page of notes for a one-shot query.
func (a *App) ListNotes(ctx context.Context, q listQuery) error {
	p, err := a.requireLogin(ctx)
	if err != nil {
		return err
	}
	filter, err := models.ParseNoteFilter(q.Filter)
	if err != nil {
		return err
	}
	order, err := models.ParseNoteSort(q.Sort)
	if err != nil {
		return err
	}
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = a.config.PageSize
	}

	b, err := a.noteService.Browse(ctx, p.ID, pageSize)
	if err != nil {
		return err
	}
	b.SetSearch(q.Search)
	b.SetFilter(filter)
	b.SetSort(order)
	if q.Page > 1 && !b.GoToPage(q.Page) {
		return fmt.Errorf("page %d out of range (1-%d)", q.Page, max(b.TotalPages(), 1))
	}

	a.printPage(b)
	return nil
}

// reloadBrowser refreshes the shell's list view after a mutation.
func (a *App) reloadBrowser(ctx context.Context, userID string) {
	if a.browser == nil {
		return
	}
	all, err := a.noteService.List(ctx, userID)
	if err != nil {
		a.log.Warn(ctx, "error reloading notes", "error", err)
		return
	}
	a.browser.Load(all)
}

func (a *App) ensureBrowser(ctx context.Context) (*services.NoteBrowser, string, error) {
	p, err := a.requireLogin(ctx)
	if err != nil {
		return nil, "", err
	}
	if a.browser == nil {
		b, err := a.noteService.Browse(ctx, p.ID, a.config.PageSize)
		if err != nil {
			return nil, "", err
		}
		a.browser = b
	}
	return a.browser, p.ID, nil
}

// Browse runs a list-view operation in the shell: list, search, filter,
// sort, page, next, prev, select, selectall and delsel.
func (a *App) Browse(ctx context.Context, op string, args []string) error {
	b, userID, err := a.ensureBrowser(ctx)
	if err != nil {
		return err
	}
	arg := strings.Join(args, " ")

	switch op {
	case "list":
	case "search":
		b.SetSearch(arg)
	case "filter":
		f, err := models.ParseNoteFilter(arg)
		if err != nil {
			return err
		}
		b.SetFilter(f)
	case "sort":
		s, err := models.ParseNoteSort(arg)
		if err != nil {
			return err
		}
		b.SetSort(s)
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("usage: page <number>")
		}
		b.GoToPage(n)
	case "next":
		b.NextPage()
	case "prev":
		b.PrevPage()
	case "select":
		for _, id := range args {
			if _, err := b.ToggleSelect(id); err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
		}
	case "selectall":
		b.ToggleSelectAll()
	case "delsel":
		if len(b.SelectedOnPage()) == 0 {
			a.warn("Nothing selected on this page")
			return nil
		}
		n, err := a.noteService.DeleteSelected(ctx, userID, b)
		if err != nil {
			return err
		}
		a.success(fmt.Sprintf("%d notes deleted", n))
	default:
		return fmt.Errorf("unknown list command %q", op)
	}

	a.printPage(b)
	return nil
}

func (a *App) printPage(b *services.NoteBrowser) {
	var sb strings.Builder

	header := fmt.Sprintf("Page %d/%d · %d notes · filter %s · sort %s",
		b.Page(), max(b.TotalPages(), 1), b.Matches(), b.Filter(), b.Sort())
	if b.Search() != "" {
		header += fmt.Sprintf(" · search %q", b.Search())
	}
	sb.WriteString(styles.Muted.Render(header))
	sb.WriteString("\n")

	visible := b.Visible()
	if len(visible) == 0 {
		sb.WriteString("No notes found\n")
	}
	selected := make(map[string]bool)
	for _, id := range b.SelectedOnPage() {
		selected[id] = true
	}
	for _, n := range visible {
		mark, style := "[ ]", styles.Pending
		if n.Completed {
			mark, style = "[x]", styles.Done
		}
		sel := " "
		if selected[n.ID] {
			sel = "*"
		}
		fmt.Fprintf(&sb, "%s %s %s  %s  %s\n", sel, mark, n.ID, style.Render(n.Title),
			styles.Muted.Render(n.CreatedAt.Local().Format(timeLayout)))
		if excerpt := firstLine(n.Content, 60); excerpt != "" {
			fmt.Fprintf(&sb, "      %s\n", styles.Muted.Render(excerpt))
		}
	}
	a.printf("%s", sb.String())
}

func firstLine(s string, limit int) string {
	line, _, _ := strings.Cut(s, "\n")
	r := []rune(line)
	if len(r) > limit {
		return string(r[:limit]) + "…"
	}
	return line
}

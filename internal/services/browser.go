package services

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/nero7007/Professional-To-Do-List/internal/common"
	"github.com/nero7007/Professional-To-Do-List/internal/models"
)

// NoteBrowser is the list view over one user's notes: search and status
// filter, then sort, then fixed-size pages, plus a selection limited to what
// is on screen. It holds no storage handle; reload it after mutations.
//
// Changing the search, filter, sort or the underlying notes recomputes the
// view, returns to page 1 and clears the selection. A NoteBrowser is not
// safe for concurrent use.
type NoteBrowser struct {
	notes    []models.Note
	view     []models.Note
	search   string
	filter   models.NoteFilter
	order    models.NoteSort
	page     int
	pageSize int
	selected map[string]struct{}

	now      func() time.Time
	collator *collate.Collator
}

func NewNoteBrowser(notes []models.Note, pageSize int, now func() time.Time) *NoteBrowser {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if now == nil {
		now = time.Now
	}
	b := &NoteBrowser{
		filter:   models.FilterAll,
		order:    models.SortNewest,
		pageSize: pageSize,
		now:      now,
		collator: collate.New(language.English),
	}
	b.Load(notes)
	return b
}

func (b *NoteBrowser) Load(notes []models.Note) {
	b.notes = append([]models.Note(nil), notes...)
	b.recompute()
}

func (b *NoteBrowser) SetSearch(term string) {
	b.search = strings.ToLower(strings.TrimSpace(term))
	b.recompute()
}

func (b *NoteBrowser) SetFilter(f models.NoteFilter) {
	b.filter = f
	b.recompute()
}

func (b *NoteBrowser) SetSort(s models.NoteSort) {
	b.order = s
	b.recompute()
}

func (b *NoteBrowser) Search() string            { return b.search }
func (b *NoteBrowser) Filter() models.NoteFilter { return b.filter }
func (b *NoteBrowser) Sort() models.NoteSort     { return b.order }
func (b *NoteBrowser) Page() int                 { return b.page }
func (b *NoteBrowser) PageSize() int             { return b.pageSize }

// Matches is the number of notes that pass the search and filter.
func (b *NoteBrowser) Matches() int { return len(b.view) }

func (b *NoteBrowser) TotalPages() int {
	return (len(b.view) + b.pageSize - 1) / b.pageSize
}

// GoToPage moves to page p and reports whether it did. Pages outside
// 1..TotalPages leave the browser unchanged.
func (b *NoteBrowser) GoToPage(p int) bool {
	if p < 1 || p > b.TotalPages() {
		return false
	}
	b.page = p
	return true
}

func (b *NoteBrowser) NextPage() bool { return b.GoToPage(b.page + 1) }
func (b *NoteBrowser) PrevPage() bool { return b.GoToPage(b.page - 1) }

// Visible returns the notes on the current page.
func (b *NoteBrowser) Visible() []models.Note {
	start := (b.page - 1) * b.pageSize
	if start >= len(b.view) {
		return nil
	}
	end := min(start+b.pageSize, len(b.view))
	return append([]models.Note(nil), b.view[start:end]...)
}

func (b *NoteBrowser) isVisible(id string) bool {
	for _, n := range b.Visible() {
		if n.ID == id {
			return true
		}
	}
	return false
}

// ToggleSelect flips the selection of a note on the current page and
// returns whether it is now selected.
func (b *NoteBrowser) ToggleSelect(id string) (bool, error) {
	if !b.isVisible(id) {
		return false, common.ErrNoteNotFound
	}
	if _, ok := b.selected[id]; ok {
		delete(b.selected, id)
		return false, nil
	}
	b.selected[id] = struct{}{}
	return true, nil
}

// ToggleSelectAll selects every note on the current page, or clears them
// when all of them are already selected. It returns whether the page ends
// up fully selected.
func (b *NoteBrowser) ToggleSelectAll() bool {
	visible := b.Visible()
	if len(visible) == 0 {
		return false
	}
	if b.AllSelected() {
		for _, n := range visible {
			delete(b.selected, n.ID)
		}
		return false
	}
	for _, n := range visible {
		b.selected[n.ID] = struct{}{}
	}
	return true
}

func (b *NoteBrowser) AllSelected() bool {
	visible := b.Visible()
	if len(visible) == 0 {
		return false
	}
	for _, n := range visible {
		if _, ok := b.selected[n.ID]; !ok {
			return false
		}
	}
	return true
}

// SelectedOnPage lists the selected ids that are on the current page, in
// display order.
func (b *NoteBrowser) SelectedOnPage() []string {
	var ids []string
	for _, n := range b.Visible() {
		if _, ok := b.selected[n.ID]; ok {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

func (b *NoteBrowser) ClearSelection() {
	b.selected = make(map[string]struct{})
}

func (b *NoteBrowser) recompute() {
	now := b.now()

	view := make([]models.Note, 0, len(b.notes))
	for _, n := range b.notes {
		if b.matchesSearch(n) && matchesFilter(n, b.filter, now) {
			view = append(view, n)
		}
	}

	switch b.order {
	case models.SortOldest:
		sort.SliceStable(view, func(i, j int) bool { return view[i].CreatedAt.Before(view[j].CreatedAt) })
	case models.SortTitle:
		sort.SliceStable(view, func(i, j int) bool {
			return b.collator.CompareString(view[i].Title, view[j].Title) < 0
		})
	case models.SortCompleted:
		sort.SliceStable(view, func(i, j int) bool { return view[i].Completed && !view[j].Completed })
	default:
		sort.SliceStable(view, func(i, j int) bool { return view[i].CreatedAt.After(view[j].CreatedAt) })
	}

	b.view = view
	b.page = 1
	b.ClearSelection()
}

func (b *NoteBrowser) matchesSearch(n models.Note) bool {
	if b.search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(n.Title), b.search) ||
		strings.Contains(strings.ToLower(n.Content), b.search)
}

func matchesFilter(n models.Note, f models.NoteFilter, now time.Time) bool {
	switch f {
	case models.FilterCompleted:
		return n.Completed
	case models.FilterPending:
		return !n.Completed
	case models.FilterToday:
		return sameDay(n.CreatedAt, now)
	case models.FilterWeek:
		return !n.CreatedAt.Before(now.AddDate(0, 0, -7))
	}
	return true
}

// sameDay compares calendar dates in now's location.
func sameDay(t, now time.Time) bool {
	y1, m1, d1 := t.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

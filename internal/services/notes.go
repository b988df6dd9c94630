package services

import (
	"context"
	"strings"

	"github.com/nero7007/Professional-To-Do-List/internal/common"
	"github.com/nero7007/Professional-To-Do-List/internal/models"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/notes"
)

type NoteService interface {
	Create(ctx context.Context, userID string, in models.NoteInput) (*models.Note, error)
	Update(ctx context.Context, userID, id string, in models.NoteInput) (*models.Note, error)
	Toggle(ctx context.Context, userID, id string) (*models.Note, error)
	Get(ctx context.Context, userID, id string) (*models.Note, error)
	List(ctx context.Context, userID string) ([]models.Note, error)
	Delete(ctx context.Context, userID, id string) error
	DeleteMany(ctx context.Context, userID string, ids []string) (int, error)
	DeleteSelected(ctx context.Context, userID string, b *NoteBrowser) (int, error)
	Stats(ctx context.Context, userID string) (models.NoteStats, error)
	Browse(ctx context.Context, userID string, pageSize int) (*NoteBrowser, error)
}

type noteService struct {
	repo notes.Repository
	opts Options
}

func NewNoteService(repo notes.Repository, opts Options) NoteService {
	opts = opts.withDefaults()
	opts.Logger = opts.Logger.With("component", "notes")
	return &noteService{repo: repo, opts: opts}
}

// normalizeNote trims the input and applies the untitled default. Both
// fields empty is an error.
func normalizeNote(in models.NoteInput) (models.NoteInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	if in.Title == "" && in.Content == "" {
		return in, common.ErrEmptyNote
	}
	if in.Title == "" {
		in.Title = models.UntitledNote
	}
	return in, nil
}

func (s *noteService) Create(ctx context.Context, userID string, in models.NoteInput) (*models.Note, error) {
	in, err := normalizeNote(in)
	if err != nil {
		return nil, err
	}

	now := s.opts.Now()
	note := models.Note{
		ID:        s.opts.NewID(),
		Title:     in.Title,
		Content:   in.Content,
		Completed: in.Completed,
		CreatedAt: now,
		UpdatedAt: now,
		UserID:    userID,
	}

	err = s.repo.Update(ctx, userID, func(all []models.Note) ([]models.Note, error) {
		return append([]models.Note{note}, all...), nil
	})
	if err != nil {
		return nil, err
	}

	s.opts.Logger.Debug(ctx, "note created", "user_id", userID, "note_id", note.ID)
	return &note, nil
}

// modify applies fn to one note in place and returns the updated copy.
func (s *noteService) modify(ctx context.Context, userID, id string, fn func(n *models.Note)) (*models.Note, error) {
	var out models.Note
	err := s.repo.Update(ctx, userID, func(all []models.Note) ([]models.Note, error) {
		i := notes.IndexOf(all, id)
		if i < 0 {
			return nil, common.ErrNoteNotFound
		}
		fn(&all[i])
		all[i].UpdatedAt = s.opts.Now()
		out = all[i]
		return all, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *noteService) Update(ctx context.Context, userID, id string, in models.NoteInput) (*models.Note, error) {
	in, err := normalizeNote(in)
	if err != nil {
		return nil, err
	}
	return s.modify(ctx, userID, id, func(n *models.Note) {
		n.Title = in.Title
		n.Content = in.Content
		n.Completed = in.Completed
	})
}

func (s *noteService) Toggle(ctx context.Context, userID, id string) (*models.Note, error) {
	return s.modify(ctx, userID, id, func(n *models.Note) {
		n.Completed = !n.Completed
	})
}

func (s *noteService) Get(ctx context.Context, userID, id string) (*models.Note, error) {
	all, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	i := notes.IndexOf(all, id)
	if i < 0 {
		return nil, common.ErrNoteNotFound
	}
	return &all[i], nil
}

func (s *noteService) List(ctx context.Context, userID string) ([]models.Note, error) {
	return s.repo.List(ctx, userID)
}

func (s *noteService) Delete(ctx context.Context, userID, id string) error {
	n, err := s.DeleteMany(ctx, userID, []string{id})
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrNoteNotFound
	}
	return nil
}

// DeleteMany removes every note whose id is listed and returns how many
// were removed. Unknown ids are ignored.
func (s *noteService) DeleteMany(ctx context.Context, userID string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	removed := 0
	err := s.repo.Update(ctx, userID, func(all []models.Note) ([]models.Note, error) {
		kept := all[:0]
		for _, n := range all {
			if _, ok := drop[n.ID]; ok {
				removed++
				continue
			}
			kept = append(kept, n)
		}
		return kept, nil
	})
	if err != nil {
		return 0, err
	}

	s.opts.Logger.Debug(ctx, "notes deleted", "user_id", userID, "count", removed)
	return removed, nil
}

// DeleteSelected deletes the browser's selection on the current page and
// reloads the browser from storage.
func (s *noteService) DeleteSelected(ctx context.Context, userID string, b *NoteBrowser) (int, error) {
	n, err := s.DeleteMany(ctx, userID, b.SelectedOnPage())
	if err != nil {
		return 0, err
	}
	all, err := s.repo.List(ctx, userID)
	if err != nil {
		return n, err
	}
	b.Load(all)
	return n, nil
}

func (s *noteService) Stats(ctx context.Context, userID string) (models.NoteStats, error) {
	all, err := s.repo.List(ctx, userID)
	if err != nil {
		return models.NoteStats{}, err
	}

	now := s.opts.Now()
	st := models.NoteStats{Total: len(all)}
	for _, n := range all {
		if n.Completed {
			st.Completed++
		}
		if sameDay(n.CreatedAt, now) {
			st.Today++
		}
	}
	st.Pending = st.Total - st.Completed
	return st, nil
}

func (s *noteService) Browse(ctx context.Context, userID string, pageSize int) (*NoteBrowser, error) {
	all, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return NewNoteBrowser(all, pageSize, s.opts.Now), nil
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nero7007/Professional-To-Do-List/internal/common"
	"github.com/nero7007/Professional-To-Do-List/internal/models"
)

func TestNoteService_CreatePrependsAndDefaultsTitle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	first, err := e.note.Create(ctx, "u1", models.NoteInput{Title: "  Groceries ", Content: "milk"})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", first.Title)
	assert.Equal(t, "u1", first.UserID)

	e.clock.Advance(time.Minute)
	second, err := e.note.Create(ctx, "u1", models.NoteInput{Content: "call mom"})
	require.NoError(t, err)
	assert.Equal(t, models.UntitledNote, second.Title)

	all, err := e.note.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)

	_, err = e.note.Create(ctx, "u1", models.NoteInput{Title: "  ", Content: "\n"})
	require.ErrorIs(t, err, common.ErrEmptyNote)

	other, err := e.note.List(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestNoteService_UpdateAndToggle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	n, err := e.note.Create(ctx, "u1", models.NoteInput{Title: "a", Content: "b"})
	require.NoError(t, err)

	e.clock.Advance(time.Hour)
	up, err := e.note.Update(ctx, "u1", n.ID, models.NoteInput{Title: "", Content: "changed", Completed: true})
	require.NoError(t, err)
	assert.Equal(t, models.UntitledNote, up.Title)
	assert.True(t, up.Completed)
	assert.Equal(t, n.CreatedAt, up.CreatedAt)
	assert.Equal(t, e.clock.Now(), up.UpdatedAt)

	tg, err := e.note.Toggle(ctx, "u1", n.ID)
	require.NoError(t, err)
	assert.False(t, tg.Completed)

	got, err := e.note.Get(ctx, "u1", n.ID)
	require.NoError(t, err)
	assert.Equal(t, "changed", got.Content)
	assert.False(t, got.Completed)

	_, err = e.note.Toggle(ctx, "u1", "missing")
	require.ErrorIs(t, err, common.ErrNoteNotFound)
	_, err = e.note.Update(ctx, "u1", n.ID, models.NoteInput{})
	require.ErrorIs(t, err, common.ErrEmptyNote)
	_, err = e.note.Get(ctx, "u2", n.ID)
	require.ErrorIs(t, err, common.ErrNoteNotFound)
}

func TestNoteService_Delete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		n, err := e.note.Create(ctx, "u1", models.NoteInput{Title: title})
		require.NoError(t, err)
		ids = append(ids, n.ID)
	}

	require.NoError(t, e.note.Delete(ctx, "u1", ids[0]))
	require.ErrorIs(t, e.note.Delete(ctx, "u1", ids[0]), common.ErrNoteNotFound)

	n, err := e.note.DeleteMany(ctx, "u1", []string{ids[1], "nope"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = e.note.DeleteMany(ctx, "u1", nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	all, err := e.note.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, ids[2], all[0].ID)
}

func TestNoteService_Stats(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	old, err := e.note.Create(ctx, "u1", models.NoteInput{Title: "old", Completed: true})
	require.NoError(t, err)
	require.NotNil(t, old)

	e.clock.Advance(24 * time.Hour)
	_, err = e.note.Create(ctx, "u1", models.NoteInput{Title: "new"})
	require.NoError(t, err)
	_, err = e.note.Create(ctx, "u1", models.NoteInput{Title: "done", Completed: true})
	require.NoError(t, err)

	st, err := e.note.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.NoteStats{Total: 3, Completed: 2, Pending: 1, Today: 2}, st)
}

func TestNoteService_DeleteSelectedReloadsBrowser(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		e.clock.Advance(time.Minute)
		_, err := e.note.Create(ctx, "u1", models.NoteInput{Title: "n"})
		require.NoError(t, err)
	}

	b, err := e.note.Browse(ctx, "u1", 2)
	require.NoError(t, err)
	require.Equal(t, 3, b.TotalPages())

	require.True(t, b.ToggleSelectAll())
	n, err := e.note.DeleteSelected(ctx, "u1", b)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, 3, b.Matches())
	assert.Equal(t, 1, b.Page())
	assert.Empty(t, b.SelectedOnPage())

	n, err = e.note.DeleteSelected(ctx, "u1", b)
	require.NoError(t, err)
	assert.Zero(t, n)
}

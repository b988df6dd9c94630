// Package notes persists each user's notes as one JSON array keyed by the
// user id. Order is significant: newest-created first.
package notes

import (
	"context"

	"github.com/nero7007/Professional-To-Do-List/internal/common"
	"github.com/nero7007/Professional-To-Do-List/internal/models"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/kv"
)

type Repository interface {
	List(ctx context.Context, userID string) ([]models.Note, error)
	Update(ctx context.Context, userID string, fn func([]models.Note) ([]models.Note, error)) error
	DeleteAll(ctx context.Context, userID string) error
}

type KVRepository struct {
	store kv.Store
}

func NewKVRepository(store kv.Store) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) List(ctx context.Context, userID string) ([]models.Note, error) {
	notes, _, err := kv.GetJSON[[]models.Note](ctx, r.store, common.NotesKey(userID))
	return notes, err
}

func (r *KVRepository) Update(ctx context.Context, userID string, fn func([]models.Note) ([]models.Note, error)) error {
	return kv.UpdateJSON(ctx, r.store, common.NotesKey(userID), func(cur []models.Note) ([]models.Note, error) {
		next, err := fn(cur)
		if next == nil && err == nil {
			next = []models.Note{}
		}
		return next, err
	})
}

func (r *KVRepository) DeleteAll(ctx context.Context, userID string) error {
	return r.store.Delete(ctx, common.NotesKey(userID))
}

func IndexOf(notes []models.Note, id string) int {
	for i, n := range notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

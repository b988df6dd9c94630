// Package prefs persists device-wide preferences: the note draft, the theme
// and the interface language.
package prefs

import (
	"context"

	"github.com/nero7007/Professional-To-Do-List/internal/common"
	"github.com/nero7007/Professional-To-Do-List/internal/models"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/kv"
)

type Repository interface {
	// Get returns the raw string stored under a preference key, "" if unset.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error

	// Draft returns nil when no draft is saved.
	Draft(ctx context.Context) (*models.Draft, error)
	SaveDraft(ctx context.Context, d models.Draft) error
	ClearDraft(ctx context.Context) error
}

type KVRepository struct {
	store kv.Store
}

func NewKVRepository(store kv.Store) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) Get(ctx context.Context, key string) (string, error) {
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (r *KVRepository) Set(ctx context.Context, key, value string) error {
	return r.store.Set(ctx, key, []byte(value))
}

func (r *KVRepository) Draft(ctx context.Context) (*models.Draft, error) {
	d, found, err := kv.GetJSON[models.Draft](ctx, r.store, common.KeyDraft)
	if err != nil || !found {
		return nil, err
	}
	return &d, nil
}

func (r *KVRepository) SaveDraft(ctx context.Context, d models.Draft) error {
	return kv.SetJSON(ctx, r.store, common.KeyDraft, d)
}

func (r *KVRepository) ClearDraft(ctx context.Context) error {
	return r.store.Delete(ctx, common.KeyDraft)
}

// Package slots persists the single-record pending verification and password
// reset state. Each slot holds at most one record; writing replaces it.
package slots

import (
	"context"

	"github.com/nero7007/Professional-To-Do-List/internal/common"
	"github.com/nero7007/Professional-To-Do-List/internal/models"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/kv"
)

type Kind string

const (
	Verification Kind = common.KeyPendingVerification
	Reset        Kind = common.KeyPasswordReset
)

type Repository interface {
	// Get returns nil when the slot is empty.
	Get(ctx context.Context, kind Kind) (*models.Slot, error)
	Put(ctx context.Context, kind Kind, slot models.Slot) error
	Clear(ctx context.Context, kind Kind) error
}

type KVRepository struct {
	store kv.Store
}

func NewKVRepository(store kv.Store) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) Get(ctx context.Context, kind Kind) (*models.Slot, error) {
	slot, found, err := kv.GetJSON[models.Slot](ctx, r.store, string(kind))
	if err != nil || !found {
		return nil, err
	}
	return &slot, nil
}

func (r *KVRepository) Put(ctx context.Context, kind Kind, slot models.Slot) error {
	return kv.SetJSON(ctx, r.store, string(kind), slot)
}

func (r *KVRepository) Clear(ctx context.Context, kind Kind) error {
	return r.store.Delete(ctx, string(kind))
}

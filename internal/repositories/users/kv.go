package users

import (
	"context"

	"github.com/nero7007/Professional-To-Do-List/internal/common"
	"github.com/nero7007/Professional-To-Do-List/internal/models"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/kv"
)

type KVRepository struct {
	store kv.Store
}

func NewKVRepository(store kv.Store) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) List(ctx context.Context) ([]models.User, error) {
	users, _, err := kv.GetJSON[[]models.User](ctx, r.store, common.KeyUsers)
	return users, err
}

func (r *KVRepository) Update(ctx context.Context, fn func([]models.User) ([]models.User, error)) error {
	return kv.UpdateJSON(ctx, r.store, common.KeyUsers, func(cur []models.User) ([]models.User, error) {
		next, err := fn(cur)
		if next == nil && err == nil {
			next = []models.User{}
		}
		return next, err
	})
}

// Package alarms persists each user's reminders as one JSON array keyed by
// the user id. Alarms are append-only.
package alarms

import (
	"context"

	"github.com/nero7007/Professional-To-Do-List/internal/common"
	"github.com/nero7007/Professional-To-Do-List/internal/models"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/kv"
)

type Repository interface {
	List(ctx context.Context, userID string) ([]models.Alarm, error)
	Append(ctx context.Context, userID string, alarm models.Alarm) error
	DeleteAll(ctx context.Context, userID string) error
}

type KVRepository struct {
	store kv.Store
}

func NewKVRepository(store kv.Store) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) List(ctx context.Context, userID string) ([]models.Alarm, error) {
	alarms, _, err := kv.GetJSON[[]models.Alarm](ctx, r.store, common.AlarmsKey(userID))
	return alarms, err
}

func (r *KVRepository) Append(ctx context.Context, userID string, alarm models.Alarm) error {
	return kv.UpdateJSON(ctx, r.store, common.AlarmsKey(userID), func(cur []models.Alarm) ([]models.Alarm, error) {
		return append(cur, alarm), nil
	})
}

func (r *KVRepository) DeleteAll(ctx context.Context, userID string) error {
	return r.store.Delete(ctx, common.AlarmsKey(userID))
}

// Package sessions persists the session collection and the pointer to the
// session the app is currently logged in with.
package sessions

import (
	"context"
	"time"

	"github.com/nero7007/Professional-To-Do-List/internal/common"
	"github.com/nero7007/Professional-To-Do-List/internal/models"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/kv"
)

type Repository interface {
	List(ctx context.Context) ([]models.Session, error)
	Update(ctx context.Context, fn func([]models.Session) ([]models.Session, error)) error
	// Current returns the current session id, or "" when logged out.
	Current(ctx context.Context) (string, error)
	SetCurrent(ctx context.Context, id string) error
	ClearCurrent(ctx context.Context) error
}

type KVRepository struct {
	store kv.Store
}

func NewKVRepository(store kv.Store) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) List(ctx context.Context) ([]models.Session, error) {
	s, _, err := kv.GetJSON[[]models.Session](ctx, r.store, common.KeySessions)
	return s, err
}

func (r *KVRepository) Update(ctx context.Context, fn func([]models.Session) ([]models.Session, error)) error {
	return kv.UpdateJSON(ctx, r.store, common.KeySessions, func(cur []models.Session) ([]models.Session, error) {
		next, err := fn(cur)
		if next == nil && err == nil {
			next = []models.Session{}
		}
		return next, err
	})
}

func (r *KVRepository) Current(ctx context.Context) (string, error) {
	raw, err := r.store.Get(ctx, common.KeyCurrentSession)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (r *KVRepository) SetCurrent(ctx context.Context, id string) error {
	return r.store.Set(ctx, common.KeyCurrentSession, []byte(id))
}

func (r *KVRepository) ClearCurrent(ctx context.Context) error {
	return r.store.Delete(ctx, common.KeyCurrentSession)
}

func FindByID(sessions []models.Session, id string) int {
	for i, s := range sessions {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// RemoveExpired drops every session that has expired at now.
func RemoveExpired(sessions []models.Session, now time.Time) []models.Session {
	kept := sessions[:0]
	for _, s := range sessions {
		if !s.Expired(now) {
			kept = append(kept, s)
		}
	}
	return kept
}

package alarms

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nero7007/Professional-To-Do-List/internal/models"
	"github.com/nero7007/Professional-To-Do-List/internal/repositories/kv"
)

func TestKVRepository_AppendKeepsOrder(t *testing.T) {
	ctx := context.Background()
	r := NewKVRepository(kv.NewMemoryStore())
	at := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, r.Append(ctx, "u1", models.Alarm{ID: "a1", Title: "standup", DateTime: at, IsActive: true}))
	require.NoError(t, r.Append(ctx, "u1", models.Alarm{ID: "a2", Title: "review", DateTime: at.Add(time.Hour), IsActive: true}))

	got, err := r.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "a1", got[0].ID)
	require.Equal(t, "a2", got[1].ID)

	other, err := r.List(ctx, "u2")
	require.NoError(t, err)
	require.Empty(t, other)

	require.NoError(t, r.DeleteAll(ctx, "u1"))
	got, err = r.List(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, got)
}

//go:build integration

package db_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/highroll-gg/bigwin-notifier/internal/db"
	"github.com/highroll-gg/bigwin-notifier/internal/types"
)

func TestCheckpoint(t *testing.T) {
	stores := map[string]db.DbInterface{
		"mongo": testDB,
		"redis": testRedis,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			t.Cleanup(func() {
				resetDatabase(t)
			})

			t.Run("never written reads as zero", func(t *testing.T) {
				cursor, err := store.GetCheckpoint(ctx)
				require.NoError(t, err)
				assert.Zero(t, cursor)
			})

			t.Run("advance from zero creates the checkpoint", func(t *testing.T) {
				advanced, err := store.AdvanceCheckpoint(ctx, types.Cursor{}, types.Cursor{Round: 100, Intra: 1})
				require.NoError(t, err)
				assert.True(t, advanced)

				cursor, err := store.GetCheckpoint(ctx)
				require.NoError(t, err)
				assert.Equal(t, types.Cursor{Round: 100, Intra: 1}, cursor)
			})

			t.Run("advance with matching from succeeds", func(t *testing.T) {
				advanced, err := store.AdvanceCheckpoint(ctx,
					types.Cursor{Round: 100, Intra: 1},
					types.Cursor{Round: 101, Intra: 0},
				)
				require.NoError(t, err)
				assert.True(t, advanced)
			})

			t.Run("stale from loses the CAS", func(t *testing.T) {
				advanced, err := store.AdvanceCheckpoint(ctx,
					types.Cursor{Round: 100, Intra: 1}, // already advanced past this
					types.Cursor{Round: 102, Intra: 0},
				)
				require.NoError(t, err)
				assert.False(t, advanced)

				// the losing writer must not have clobbered the cursor
				cursor, err := store.GetCheckpoint(ctx)
				require.NoError(t, err)
				assert.Equal(t, types.Cursor{Round: 101, Intra: 0}, cursor)
			})

			t.Run("advance from zero loses once the checkpoint exists", func(t *testing.T) {
				advanced, err := store.AdvanceCheckpoint(ctx, types.Cursor{}, types.Cursor{Round: 999, Intra: 0})
				require.NoError(t, err)
				assert.False(t, advanced)
			})

			t.Run("round trips arbitrary cursor values", func(t *testing.T) {
				current, err := store.GetCheckpoint(ctx)
				require.NoError(t, err)

				target := types.Cursor{
					Round: current.Round + 1 + uint64(gofakeit.Uint32()),
					Intra: uint64(gofakeit.Uint16()),
				}
				advanced, err := store.AdvanceCheckpoint(ctx, current, target)
				require.NoError(t, err)
				require.True(t, advanced)

				cursor, err := store.GetCheckpoint(ctx)
				require.NoError(t, err)
				assert.Equal(t, target, cursor)
			})
		})
	}
}

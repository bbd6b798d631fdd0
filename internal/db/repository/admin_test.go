package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yt-harvest/youtube-warehouse-go/internal/db/testutil"
)

func TestAdminRepository_PurgeAll(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	defer td.Cleanup(t)

	adminRepo := NewAdminRepository(td.Pool)
	channelRepo := NewChannelRepository(td.Pool)
	videoRepo := NewVideoRepository(td.Pool)
	commentRepo := NewCommentRepository(td.Pool)
	ctx := context.Background()

	t.Run("empties every table", func(t *testing.T) {
		td.TruncateTables(t)

		require.NoError(t, channelRepo.Upsert(ctx, testChannel("UC1")))
		require.NoError(t, videoRepo.Upsert(ctx, testVideo("v1", "UC1")))
		_, err := commentRepo.InsertIfAbsent(ctx, testComment("cm1", "v1"))
		require.NoError(t, err)

		require.NoError(t, adminRepo.PurgeAll(ctx))

		for name, count := range map[string]func(context.Context) (int64, error){
			"channels": channelRepo.Count,
			"videos":   videoRepo.Count,
			"comments": commentRepo.Count,
		} {
			total, err := count(ctx)
			require.NoError(t, err, name)
			assert.Zero(t, total, name)
		}
	})

	t.Run("purging an empty warehouse succeeds", func(t *testing.T) {
		td.TruncateTables(t)

		require.NoError(t, adminRepo.PurgeAll(ctx))
	})

	t.Run("warehouse is usable after a purge", func(t *testing.T) {
		td.TruncateTables(t)

		require.NoError(t, channelRepo.Upsert(ctx, testChannel("UC1")))
		require.NoError(t, adminRepo.PurgeAll(ctx))
		require.NoError(t, channelRepo.Upsert(ctx, testChannel("UC1")))

		total, err := channelRepo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})
}

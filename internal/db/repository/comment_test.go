package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yt-harvest/youtube-warehouse-go/internal/db"
	"github.com/yt-harvest/youtube-warehouse-go/internal/db/models"
	"github.com/yt-harvest/youtube-warehouse-go/internal/db/testutil"
)

func testComment(id, videoID string) *models.Comment {
	return &models.Comment{
		CommentID:   id,
		VideoID:     videoID,
		CommentText: "text of " + id,
		AuthorName:  "someone",
		PublishedAt: time.Date(2022, 3, 16, 8, 0, 0, 0, time.UTC),
	}
}

func seedVideo(t *testing.T, td *testutil.TestDatabase) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, NewChannelRepository(td.Pool).Upsert(ctx, testChannel("UC1")))
	require.NoError(t, NewVideoRepository(td.Pool).Upsert(ctx, testVideo("v1", "UC1")))
}

func TestCommentRepository_InsertIfAbsent(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	defer td.Cleanup(t)

	repo := NewCommentRepository(td.Pool)
	ctx := context.Background()

	t.Run("inserts new comment", func(t *testing.T) {
		td.TruncateTables(t)
		seedVideo(t, td)

		inserted, err := repo.InsertIfAbsent(ctx, testComment("cm1", "v1"))
		require.NoError(t, err)
		assert.True(t, inserted)

		total, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("first write wins", func(t *testing.T) {
		td.TruncateTables(t)
		seedVideo(t, td)

		first := testComment("cm1", "v1")
		inserted, err := repo.InsertIfAbsent(ctx, first)
		require.NoError(t, err)
		assert.True(t, inserted)

		replay := testComment("cm1", "v1")
		replay.CommentText = "edited later"
		replay.AuthorName = "someone else"
		inserted, err = repo.InsertIfAbsent(ctx, replay)
		require.NoError(t, err)
		assert.False(t, inserted)

		stored, err := repo.GetByID(ctx, "cm1")
		require.NoError(t, err)
		assert.Equal(t, "text of cm1", stored.CommentText)
		assert.Equal(t, "someone", stored.AuthorName)

		total, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("orphan comment is rejected", func(t *testing.T) {
		td.TruncateTables(t)

		_, err := repo.InsertIfAbsent(ctx, testComment("cm1", "v_missing"))
		require.Error(t, err)
		assert.True(t, db.IsForeignKeyViolation(err))
	})
}

func TestCommentRepository_ListByVideoID(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	defer td.Cleanup(t)

	repo := NewCommentRepository(td.Pool)
	ctx := context.Background()

	t.Run("returns comments of one video", func(t *testing.T) {
		td.TruncateTables(t)
		seedVideo(t, td)

		_, err := repo.InsertIfAbsent(ctx, testComment("cm1", "v1"))
		require.NoError(t, err)
		_, err = repo.InsertIfAbsent(ctx, testComment("cm2", "v1"))
		require.NoError(t, err)

		comments, err := repo.ListByVideoID(ctx, "v1", 10)
		require.NoError(t, err)
		assert.Len(t, comments, 2)
	})

	t.Run("unknown id maps to not found", func(t *testing.T) {
		td.TruncateTables(t)

		_, err := repo.GetByID(ctx, "cm_missing")
		require.Error(t, err)
		assert.True(t, db.IsNotFound(err))
	})
}

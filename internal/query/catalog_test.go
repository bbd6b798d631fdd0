package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yt-harvest/youtube-warehouse-go/internal/db/models"
	"github.com/yt-harvest/youtube-warehouse-go/internal/db/repository"
	"github.com/yt-harvest/youtube-warehouse-go/internal/db/testutil"
)

func TestList(t *testing.T) {
	t.Parallel()

	questions := List()
	require.Len(t, questions, 10)

	seen := make(map[string]bool, len(questions))
	for _, q := range questions {
		assert.NotEmpty(t, q.Key)
		assert.NotEmpty(t, q.Title)
		assert.False(t, seen[q.Key], "duplicate key %s", q.Key)
		seen[q.Key] = true
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	q, err := Get("top_10_viewed_videos")
	require.NoError(t, err)
	assert.Equal(t, "top_10_viewed_videos", q.Key)

	_, err = Get("nope")
	require.Error(t, err)
	assert.True(t, IsUnknownQuestion(err))
}

func seedWarehouse(t *testing.T, td *testutil.TestDatabase) {
	t.Helper()
	ctx := context.Background()

	channels := repository.NewChannelRepository(td.Pool)
	videos := repository.NewVideoRepository(td.Pool)
	comments := repository.NewCommentRepository(td.Pool)

	require.NoError(t, channels.Upsert(ctx, &models.Channel{
		ChannelID:         "UC_a",
		Name:              "Alpha",
		SubscriberCount:   100,
		ViewCount:         0,
		VideoCount:        2,
		UploadsPlaylistID: "UU_a",
	}))
	require.NoError(t, channels.Upsert(ctx, &models.Channel{
		ChannelID:         "UC_b",
		Name:              "Beta",
		SubscriberCount:   50,
		ViewCount:         0,
		VideoCount:        1,
		UploadsPlaylistID: "UU_b",
	}))

	require.NoError(t, videos.Upsert(ctx, &models.Video{
		VideoID:      "v1",
		ChannelID:    "UC_a",
		Title:        "Alpha One",
		PublishedAt:  time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC),
		ViewCount:    1000,
		LikeCount:    100,
		CommentCount: 2,
		Duration:     "00:10:00",
		Definition:   "hd",
	}))
	require.NoError(t, videos.Upsert(ctx, &models.Video{
		VideoID:      "v2",
		ChannelID:    "UC_a",
		Title:        "Alpha Two",
		PublishedAt:  time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC),
		ViewCount:    500,
		LikeCount:    20,
		CommentCount: 0,
		Duration:     "00:20:00",
		Definition:   "hd",
	}))
	require.NoError(t, videos.Upsert(ctx, &models.Video{
		VideoID:      "v3",
		ChannelID:    "UC_b",
		Title:        "Beta One",
		PublishedAt:  time.Date(2021, 8, 20, 0, 0, 0, 0, time.UTC),
		ViewCount:    3000,
		LikeCount:    300,
		CommentCount: 1,
		Duration:     "00:05:00",
		Definition:   "sd",
	}))

	for _, c := range []*models.Comment{
		{CommentID: "cm1", VideoID: "v1", CommentText: "nice", AuthorName: "x", PublishedAt: time.Now().UTC()},
		{CommentID: "cm2", VideoID: "v1", CommentText: "great", AuthorName: "y", PublishedAt: time.Now().UTC()},
		{CommentID: "cm3", VideoID: "v3", CommentText: "ok", AuthorName: "z", PublishedAt: time.Now().UTC()},
	} {
		_, err := comments.InsertIfAbsent(ctx, c)
		require.NoError(t, err)
	}
}

func TestRun(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	defer td.Cleanup(t)

	ctx := context.Background()

	t.Run("every question runs on an empty warehouse", func(t *testing.T) {
		td.TruncateTables(t)

		for _, q := range List() {
			result, err := Run(ctx, td.Pool, q.Key)
			require.NoError(t, err, q.Key)
			assert.NotEmpty(t, result.Columns, q.Key)
			assert.NotNil(t, result.Rows, q.Key)
		}
	})

	t.Run("unknown key is rejected", func(t *testing.T) {
		_, err := Run(ctx, td.Pool, "nope")
		require.Error(t, err)
		assert.True(t, IsUnknownQuestion(err))
	})

	t.Run("top viewed videos are ordered by views", func(t *testing.T) {
		td.TruncateTables(t)
		seedWarehouse(t, td)

		result, err := Run(ctx, td.Pool, "top_10_viewed_videos")
		require.NoError(t, err)
		require.Len(t, result.Rows, 3)
		assert.Equal(t, []string{"Beta One", "Beta", "3000"}, result.Rows[0])
		assert.Equal(t, []string{"Alpha One", "Alpha", "1000"}, result.Rows[1])
		assert.Equal(t, []string{"Alpha Two", "Alpha", "500"}, result.Rows[2])
	})

	t.Run("channels with most videos counts per channel", func(t *testing.T) {
		td.TruncateTables(t)
		seedWarehouse(t, td)

		result, err := Run(ctx, td.Pool, "channels_most_videos")
		require.NoError(t, err)
		require.Len(t, result.Rows, 2)
		assert.Equal(t, []string{"Alpha", "2"}, result.Rows[0])
		assert.Equal(t, []string{"Beta", "1"}, result.Rows[1])
	})

	t.Run("comments per video counts stored comments", func(t *testing.T) {
		td.TruncateTables(t)
		seedWarehouse(t, td)

		result, err := Run(ctx, td.Pool, "comments_per_video")
		require.NoError(t, err)
		require.Len(t, result.Rows, 3)
		assert.Equal(t, []string{"Alpha One", "2"}, result.Rows[0])
	})

	t.Run("channels published in 2022", func(t *testing.T) {
		td.TruncateTables(t)
		seedWarehouse(t, td)

		result, err := Run(ctx, td.Pool, "channels_published_2022")
		require.NoError(t, err)
		require.Len(t, result.Rows, 1)
		assert.Equal(t, []string{"Alpha"}, result.Rows[0])
	})

	t.Run("views per channel sums video views", func(t *testing.T) {
		td.TruncateTables(t)
		seedWarehouse(t, td)

		result, err := Run(ctx, td.Pool, "views_per_channel")
		require.NoError(t, err)
		require.Len(t, result.Rows, 2)
		assert.Equal(t, []string{"Beta", "3000"}, result.Rows[0])
		assert.Equal(t, []string{"Alpha", "1500"}, result.Rows[1])
	})

	t.Run("average duration renders as a clock string", func(t *testing.T) {
		td.TruncateTables(t)
		seedWarehouse(t, td)

		result, err := Run(ctx, td.Pool, "avg_duration_per_channel")
		require.NoError(t, err)
		require.Len(t, result.Rows, 2)
		assert.Equal(t, []string{"Alpha", "00:15:00"}, result.Rows[0])
		assert.Equal(t, []string{"Beta", "00:05:00"}, result.Rows[1])
	})
}

// Package youtube wraps the YouTube Data API v3 for the harvester. The
// client issues typed reads for channel, playlist-item, video and
// comment-thread resources and surfaces pagination tokens; it performs no
// retries of its own.
package youtube

import (
	"context"
	"fmt"
	"strconv"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const defaultPageSize = 50

// Client wraps the YouTube Data API v3 client.
type Client struct {
	service          *youtube.Service
	playlistPageSize int64
}

// NewClient creates a new YouTube API client with the given credential.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{
		service:          service,
		playlistPageSize: defaultPageSize,
	}, nil
}

// SetPlaylistPageSize overrides the playlist page size (1..50).
func (c *Client) SetPlaylistPageSize(size int64) {
	if size > 0 && size <= 50 {
		c.playlistPageSize = size
	}
}

// FetchChannel retrieves the snippet, statistics and contentDetails parts of
// one channel. A response with zero items maps to ErrNotFound.
func (c *Client) FetchChannel(ctx context.Context, channelID string) (*ChannelPayload, error) {
	call := c.service.Channels.
		List([]string{"snippet", "statistics", "contentDetails"}).
		Id(channelID).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		return nil, classifyError("fetch channel", err)
	}

	if len(response.Items) == 0 {
		return nil, fmt.Errorf("fetch channel %s: %w", channelID, ErrNotFound)
	}

	item := response.Items[0]
	payload := &ChannelPayload{ID: item.Id}

	if item.Snippet != nil {
		payload.Title = item.Snippet.Title
		payload.Description = item.Snippet.Description
	}

	if item.Statistics != nil {
		payload.SubscriberCount = strconv.FormatUint(item.Statistics.SubscriberCount, 10)
		payload.ViewCount = strconv.FormatUint(item.Statistics.ViewCount, 10)
		payload.VideoCount = strconv.FormatUint(item.Statistics.VideoCount, 10)
	}

	if item.ContentDetails != nil && item.ContentDetails.RelatedPlaylists != nil {
		payload.UploadsPlaylistID = item.ContentDetails.RelatedPlaylists.Uploads
	}

	return payload, nil
}

// FetchPlaylistPage retrieves one page of video IDs from a playlist. An empty
// next token means the playlist is exhausted.
func (c *Client) FetchPlaylistPage(ctx context.Context, playlistID, pageToken string) ([]string, string, error) {
	call := c.service.PlaylistItems.
		List([]string{"contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(c.playlistPageSize).
		Context(ctx)

	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	response, err := call.Do()
	if err != nil {
		return nil, "", classifyError("fetch playlist page", err)
	}

	videoIDs := make([]string, 0, len(response.Items))
	for _, item := range response.Items {
		if item.ContentDetails != nil {
			videoIDs = append(videoIDs, item.ContentDetails.VideoId)
		}
	}

	return videoIDs, response.NextPageToken, nil
}

// FetchVideo retrieves the snippet, contentDetails and statistics parts of
// one video. A response with zero items maps to ErrNotFound.
func (c *Client) FetchVideo(ctx context.Context, videoID string) (*VideoPayload, error) {
	call := c.service.Videos.
		List([]string{"snippet", "contentDetails", "statistics"}).
		Id(videoID).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		return nil, classifyError("fetch video", err)
	}

	if len(response.Items) == 0 {
		return nil, fmt.Errorf("fetch video %s: %w", videoID, ErrNotFound)
	}

	item := response.Items[0]
	payload := &VideoPayload{ID: item.Id}

	if item.Snippet != nil {
		payload.ChannelID = item.Snippet.ChannelId
		payload.Title = item.Snippet.Title
		payload.Description = item.Snippet.Description
		payload.Tags = item.Snippet.Tags
		payload.PublishedAt = item.Snippet.PublishedAt

		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Default != nil {
			payload.ThumbnailURL = item.Snippet.Thumbnails.Default.Url
		}
	}

	if item.ContentDetails != nil {
		payload.Duration = item.ContentDetails.Duration
		payload.Definition = item.ContentDetails.Definition
		payload.Caption = item.ContentDetails.Caption
	}

	if item.Statistics != nil {
		payload.ViewCount = strconv.FormatUint(item.Statistics.ViewCount, 10)
		payload.LikeCount = strconv.FormatUint(item.Statistics.LikeCount, 10)
		payload.FavoriteCount = strconv.FormatUint(item.Statistics.FavoriteCount, 10)
		payload.CommentCount = strconv.FormatUint(item.Statistics.CommentCount, 10)
	}

	return payload, nil
}

// FetchCommentPage retrieves one page of top-level comments for a video.
// Videos with comments disabled map to ErrNotFound.
func (c *Client) FetchCommentPage(ctx context.Context, videoID, pageToken string, pageSize int64) ([]CommentPayload, string, error) {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 100
	}

	call := c.service.CommentThreads.
		List([]string{"snippet"}).
		VideoId(videoID).
		MaxResults(pageSize).
		TextFormat("plainText").
		Context(ctx)

	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	response, err := call.Do()
	if err != nil {
		return nil, "", classifyError("fetch comment page", err)
	}

	comments := make([]CommentPayload, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Snippet == nil || item.Snippet.TopLevelComment == nil || item.Snippet.TopLevelComment.Snippet == nil {
			continue
		}

		snippet := item.Snippet.TopLevelComment.Snippet
		comments = append(comments, CommentPayload{
			ID:          item.Snippet.TopLevelComment.Id,
			VideoID:     videoID,
			Text:        snippet.TextDisplay,
			AuthorName:  snippet.AuthorDisplayName,
			PublishedAt: snippet.PublishedAt,
		})
	}

	return comments, response.NextPageToken, nil
}

// Package normalize maps raw Data API payloads into the persisted entity
// shapes. Every function is a pure mapping: counters are coerced from wire
// strings to integers, ISO-8601 durations become zero-padded "HH:MM:SS"
// strings, RFC3339 timestamps become time.Time values.
package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yt-harvest/youtube-warehouse-go/internal/db/models"
	"github.com/yt-harvest/youtube-warehouse-go/internal/service/youtube"
)

// ErrMalformedPayload is returned when an upstream payload cannot be coerced
// into the target entity shape. Callers skip the record.
var ErrMalformedPayload = errors.New("malformed payload")

// IsMalformedPayload returns true if the error is an ErrMalformedPayload error.
func IsMalformedPayload(err error) bool {
	return errors.Is(err, ErrMalformedPayload)
}

const tagSeparator = ", "

// Channel converts a channel payload into a Channel entity.
func Channel(payload *youtube.ChannelPayload) (*models.Channel, error) {
	subscribers, err := parseCount("subscriberCount", payload.SubscriberCount)
	if err != nil {
		return nil, err
	}

	views, err := parseCount("viewCount", payload.ViewCount)
	if err != nil {
		return nil, err
	}

	videos, err := parseCount("videoCount", payload.VideoCount)
	if err != nil {
		return nil, err
	}

	return &models.Channel{
		ChannelID:         payload.ID,
		Name:              payload.Title,
		SubscriberCount:   subscribers,
		ViewCount:         views,
		VideoCount:        videos,
		UploadsPlaylistID: payload.UploadsPlaylistID,
		Description:       payload.Description,
	}, nil
}

// Video converts a video payload into a Video entity. Missing tags,
// description and caption default to empty/false rather than failing; an
// unparsable duration becomes "00:00:00".
func Video(payload *youtube.VideoPayload) (*models.Video, error) {
	views, err := parseCount("viewCount", payload.ViewCount)
	if err != nil {
		return nil, err
	}

	likes, err := parseCount("likeCount", payload.LikeCount)
	if err != nil {
		return nil, err
	}

	favorites, err := parseCount("favoriteCount", payload.FavoriteCount)
	if err != nil {
		return nil, err
	}

	comments, err := parseCount("commentCount", payload.CommentCount)
	if err != nil {
		return nil, err
	}

	publishedAt, err := parseTimestamp("publishedAt", payload.PublishedAt)
	if err != nil {
		return nil, err
	}

	caption, _ := strconv.ParseBool(payload.Caption) // absent or junk means no captions

	return &models.Video{
		VideoID:       payload.ID,
		ChannelID:     payload.ChannelID,
		Title:         payload.Title,
		Description:   payload.Description,
		Tags:          strings.Join(payload.Tags, tagSeparator),
		ThumbnailURL:  payload.ThumbnailURL,
		PublishedAt:   publishedAt,
		ViewCount:     views,
		LikeCount:     likes,
		FavoriteCount: favorites,
		CommentCount:  comments,
		Duration:      Duration(payload.Duration),
		Definition:    payload.Definition,
		Caption:       caption,
	}, nil
}

// Comment converts a comment payload into a Comment entity. Fields are a
// straight projection; only the timestamp is coerced.
func Comment(payload *youtube.CommentPayload) (*models.Comment, error) {
	publishedAt, err := parseTimestamp("publishedAt", payload.PublishedAt)
	if err != nil {
		return nil, err
	}

	return &models.Comment{
		CommentID:   payload.ID,
		VideoID:     payload.VideoID,
		CommentText: payload.Text,
		AuthorName:  payload.AuthorName,
		PublishedAt: publishedAt,
	}, nil
}

// parseCount coerces a wire counter to int64. The API omits counters it is
// not allowed to show, so an empty string defaults to zero; anything else
// non-numeric is a malformed payload.
func parseCount(field, raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s %q: %w", field, raw, ErrMalformedPayload)
	}

	return n, nil
}

func parseTimestamp(field, raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s %q: %w", field, raw, ErrMalformedPayload)
	}

	return t.UTC(), nil
}

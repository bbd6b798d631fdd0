package youtube

// Payload types carry raw API fields the way the wire serializes them:
// counters and timestamps stay strings, durations stay ISO-8601. Type
// coercion is the normalizer's job, not the client's.

// ChannelPayload is the raw channel resource.
type ChannelPayload struct {
	ID                string
	Title             string
	Description       string
	SubscriberCount   string
	ViewCount         string
	VideoCount        string
	UploadsPlaylistID string
}

// VideoPayload is the raw video resource.
type VideoPayload struct {
	ID            string
	ChannelID     string
	Title         string
	Description   string
	Tags          []string
	ThumbnailURL  string
	PublishedAt   string
	Duration      string
	Definition    string
	Caption       string
	ViewCount     string
	LikeCount     string
	FavoriteCount string
	CommentCount  string
}

// CommentPayload is a raw top-level comment.
type CommentPayload struct {
	ID          string
	VideoID     string
	Text        string
	AuthorName  string
	PublishedAt string
}

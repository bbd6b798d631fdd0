package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yt-harvest/youtube-warehouse-go/internal/db"
	"github.com/yt-harvest/youtube-warehouse-go/internal/db/models"
)

// CommentRepository defines operations for managing harvested comments.
type CommentRepository interface {
	// InsertIfAbsent inserts a comment keyed by comment ID. If the ID already
	// exists the stored row is left untouched (first write wins) and the
	// method reports inserted=false. The owning video must already exist.
	InsertIfAbsent(ctx context.Context, comment *models.Comment) (inserted bool, err error)

	// GetByID retrieves a single comment by ID.
	GetByID(ctx context.Context, commentID string) (*models.Comment, error)

	// ListByVideoID retrieves comments of a video, newest first.
	ListByVideoID(ctx context.Context, videoID string, limit int) ([]*models.Comment, error)

	// List retrieves comments with pagination, newest first.
	List(ctx context.Context, limit, offset int) ([]*models.Comment, error)

	// Count returns the number of stored comments.
	Count(ctx context.Context) (int64, error)
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

const commentColumns = `comment_id, video_id, comment_text, author_name, published_at, first_seen_at`

func (r *commentRepository) InsertIfAbsent(ctx context.Context, comment *models.Comment) (bool, error) {
	query := `
		INSERT INTO comments (comment_id, video_id, comment_text, author_name, published_at, first_seen_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (comment_id) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query,
		comment.CommentID,
		comment.VideoID,
		comment.CommentText,
		comment.AuthorName,
		comment.PublishedAt,
	)
	if err != nil {
		return false, db.WrapError(err, "insert comment")
	}

	return tag.RowsAffected() == 1, nil
}

func (r *commentRepository) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE comment_id = $1`

	comment := &models.Comment{}
	err := r.pool.QueryRow(ctx, query, commentID).Scan(
		&comment.CommentID,
		&comment.VideoID,
		&comment.CommentText,
		&comment.AuthorName,
		&comment.PublishedAt,
		&comment.FirstSeenAt,
	)

	if err != nil {
		return nil, db.WrapError(err, "get comment by id")
	}

	return comment, nil
}

func (r *commentRepository) ListByVideoID(ctx context.Context, videoID string, limit int) ([]*models.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE video_id = $1
		ORDER BY published_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, videoID, limit)
	if err != nil {
		return nil, db.WrapError(err, "list comments by video id")
	}
	defer rows.Close()

	return scanComments(rows)
}

func (r *commentRepository) List(ctx context.Context, limit, offset int) ([]*models.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments
		ORDER BY published_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, db.WrapError(err, "list comments")
	}
	defer rows.Close()

	return scanComments(rows)
}

func (r *commentRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM comments`).Scan(&total); err != nil {
		return 0, db.WrapError(err, "count comments")
	}
	return total, nil
}

// Helper function to scan multiple comments from query results
func scanComments(rows pgx.Rows) ([]*models.Comment, error) {
	var comments []*models.Comment

	for rows.Next() {
		comment := &models.Comment{}
		err := rows.Scan(
			&comment.CommentID,
			&comment.VideoID,
			&comment.CommentText,
			&comment.AuthorName,
			&comment.PublishedAt,
			&comment.FirstSeenAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	return comments, nil
}

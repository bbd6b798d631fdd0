package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yt-harvest/youtube-warehouse-go/internal/db"
)

// AdminRepository holds maintenance operations spanning all tables.
type AdminRepository interface {
	// PurgeAll deletes every stored row. Tables are cleared child-first
	// (comments, videos, channels) inside one transaction so foreign key
	// constraints hold at every point.
	PurgeAll(ctx context.Context) error
}

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository creates a new AdminRepository.
func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

func (r *adminRepository) PurgeAll(ctx context.Context) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return db.WrapError(err, "begin purge")
	}
	defer tx.Rollback(ctx) // Rollback is safe to call even if committed

	for _, stmt := range []string{
		`DELETE FROM comments`,
		`DELETE FROM videos`,
		`DELETE FROM channels`,
	} {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return db.WrapError(err, "purge tables")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return db.WrapError(err, "commit purge")
	}

	return nil
}

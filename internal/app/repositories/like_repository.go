package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pucknotes/server/internal/app/models"
)

// LikeRepository keeps like membership and the denormalized counters in step.
// Every mutation is a single statement, so the counter cannot drift from membership
// under concurrent toggles.
type LikeRepository struct {
	db *pgxpool.Pool
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *pgxpool.Pool) *LikeRepository {
	return &LikeRepository{db: db}
}

func itemTable(kind models.ItemKind) (string, error) {
	switch kind {
	case models.KindNote:
		return "notes", nil
	case models.KindComment:
		return "comments", nil
	default:
		return "", fmt.Errorf("unknown item kind %q", kind)
	}
}

// likeStatement inserts the membership row and bumps the counter in one statement. The item
// row is locked first, so a like can only land on an item that still exists and a
// concurrent delete waits for it.
func likeStatement(table string) string {
	return fmt.Sprintf(`
		WITH item AS (
			SELECT id FROM %s WHERE id = $3 FOR UPDATE
		), ins AS (
			INSERT INTO likes (account_id, item_kind, item_id)
			SELECT $1::BIGINT, $2::VARCHAR, id FROM item
			ON CONFLICT ON CONSTRAINT likes_account_item_key DO NOTHING
			RETURNING item_id
		)
		UPDATE %s SET total_likes = total_likes + 1 WHERE id IN (SELECT item_id FROM ins)`, table, table)
}

// unlikeStatement is the mirror of likeStatement
func unlikeStatement(table string) string {
	return fmt.Sprintf(`
		WITH del AS (
			DELETE FROM likes WHERE account_id = $1 AND item_kind = $2 AND item_id = $3
			RETURNING item_id
		)
		UPDATE %s SET total_likes = total_likes - 1 WHERE id IN (SELECT item_id FROM del)`, table)
}

// Like records the like and bumps the counter. It reports false when the like already existed
// or the item is gone.
func (r *LikeRepository) Like(ctx context.Context, kind models.ItemKind, itemID, accountID int64) (bool, error) {
	table, err := itemTable(kind)
	if err != nil {
		return false, err
	}
	tag, err := r.db.Exec(ctx, likeStatement(table), accountID, string(kind), itemID)
	if err != nil {
		return false, fmt.Errorf("like %s: %w", kind, err)
	}
	return tag.RowsAffected() > 0, nil
}

// Unlike removes the like and decrements the counter. It reports false when there was no like.
func (r *LikeRepository) Unlike(ctx context.Context, kind models.ItemKind, itemID, accountID int64) (bool, error) {
	table, err := itemTable(kind)
	if err != nil {
		return false, err
	}
	tag, err := r.db.Exec(ctx, unlikeStatement(table), accountID, string(kind), itemID)
	if err != nil {
		return false, fmt.Errorf("unlike %s: %w", kind, err)
	}
	return tag.RowsAffected() > 0, nil
}

// HasLiked reports whether accountID currently likes the item
func (r *LikeRepository) HasLiked(ctx context.Context, kind models.ItemKind, itemID, accountID int64) (bool, error) {
	var liked bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM likes WHERE account_id = $1 AND item_kind = $2 AND item_id = $3)`,
		accountID, string(kind), itemID).Scan(&liked)
	if err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return liked, nil
}

// TotalLikes reads the cached counter of the item
func (r *LikeRepository) TotalLikes(ctx context.Context, kind models.ItemKind, itemID int64) (int64, error) {
	table, err := itemTable(kind)
	if err != nil {
		return 0, err
	}
	var total int64
	if err := r.db.QueryRow(ctx, fmt.Sprintf(`SELECT total_likes FROM %s WHERE id = $1`, table), itemID).Scan(&total); err != nil {
		return 0, notFound(err, string(kind))
	}
	return total, nil
}

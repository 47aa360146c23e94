package cart

import (
	"context"
	"database/sql"
	"time"

	"plantstore-bff/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Save(ctx context.Context, sessionID string, items []Item) error
	Load(ctx context.Context, sessionID string) ([]Item, error)
	Clear(ctx context.Context, sessionID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Save replaces the session's rows wholesale inside one transaction. The
// position column preserves insertion order across reloads.
func (r *repository) Save(ctx context.Context, sessionID string, items []Item) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Save"),
		zap.String("session_id", sessionID),
	)

	start := time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE session_id = $1
	`, sessionID); err != nil {
		log.Error("delete failed", zap.Error(err))
		return err
	}

	for pos, it := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO cart_items (
				session_id,
				product_id,
				name,
				price,
				quantity,
				image,
				position,
				updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		`, sessionID, it.ID, it.Name, it.Price, it.Quantity, it.Image, pos); err != nil {
			log.Error("insert failed",
				zap.String("product_id", it.ID),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit failed", zap.Error(err))
		return err
	}

	log.Debug("cart saved",
		zap.Int("items", len(items)),
		zap.Duration("duration", time.Since(start)),
	)

	return nil
}

func (r *repository) Load(ctx context.Context, sessionID string) ([]Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Load"),
		zap.String("session_id", sessionID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, name, price, quantity, image
		FROM cart_items
		WHERE session_id = $1
		ORDER BY position
	`, sessionID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.Quantity, &it.Image); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	return items, nil
}

func (r *repository) Clear(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE session_id = $1
	`, sessionID)
	return err
}

package wishlist

import (
	"context"
	"database/sql"

	"plantstore-bff/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Save(ctx context.Context, sessionID string, items []Item) error
	Load(ctx context.Context, sessionID string) ([]Item, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Save(ctx context.Context, sessionID string, items []Item) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Save"),
		zap.String("session_id", sessionID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM wishlist_items
		WHERE session_id = $1
	`, sessionID); err != nil {
		log.Error("delete failed", zap.Error(err))
		return err
	}

	for pos, it := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO wishlist_items (
				session_id,
				product_id,
				name,
				price,
				image,
				stock,
				position,
				updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		`, sessionID, it.ID, it.Name, it.Price, it.Image, it.Stock, pos); err != nil {
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

	return nil
}

func (r *repository) Load(ctx context.Context, sessionID string) ([]Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Load"),
		zap.String("session_id", sessionID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, name, price, image, stock
		FROM wishlist_items
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
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.Image, &it.Stock); err != nil {
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

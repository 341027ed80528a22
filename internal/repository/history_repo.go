package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"

	"chat-gateway/internal/models"
)

// rowQuerier is the part of *pgxpool.Pool the history repo needs.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type HistoryRepo struct {
	pool rowQuerier
}

func NewHistoryRepo(pool rowQuerier) *HistoryRepo {
	return &HistoryRepo{pool: pool}
}

func (r *HistoryRepo) Record(ctx context.Context, entry models.HistoryEntry) (models.RecordID, error) {
	query := `
		INSERT INTO chat_history (request_id, user_message, bot_message, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		nullableString(entry.RequestID),
		entry.UserMessage,
		entry.BotMessage,
		entry.CreatedAt,
	).Scan(&id)
	if err != nil {
		return "", err
	}

	return models.RecordID(strconv.FormatInt(id, 10)), nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"chat-gateway/internal/models"
)

// RedisHistoryRepo appends entries to a Redis stream. The stream entry id
// doubles as the record id.
type RedisHistoryRepo struct {
	client *redis.Client
	stream string
}

func NewRedisHistoryRepo(client *redis.Client, stream string) *RedisHistoryRepo {
	return &RedisHistoryRepo{client: client, stream: stream}
}

func (r *RedisHistoryRepo) Record(ctx context.Context, entry models.HistoryEntry) (models.RecordID, error) {
	id, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		Values: map[string]interface{}{
			"request_id":   entry.RequestID,
			"user_message": entry.UserMessage,
			"bot_message":  entry.BotMessage,
			"created_at":   entry.CreatedAt.UTC().Format(time.RFC3339),
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("failed to append to stream %s: %w", r.stream, err)
	}
	return models.RecordID(id), nil
}

package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	matchEventsQueueKey = "match_events"
)

// Типы событий матчинга. match_accepted открывает паре чат в остальной платформе.
const (
	EventMatchProposed = "match_proposed"
	EventMatchAccepted = "match_accepted"
)

// MatchEvent - структура для данных события матчинга
type MatchEvent struct {
	Type      string    `json:"type"`
	MatchID   uuid.UUID `json:"match_id"`
	User1ID   uuid.UUID `json:"user1_id"`
	User2ID   uuid.UUID `json:"user2_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// EventPublisher - интерфейс для публикации событий матчинга
type EventPublisher interface {
	Publish(ctx context.Context, event MatchEvent) error
}

// RedisEventPublisher - реализация EventPublisher, использующая Redis
type RedisEventPublisher struct {
	redisClient *redis.Client
}

// NewRedisEventPublisher создает новый RedisEventPublisher
func NewRedisEventPublisher(client *redis.Client) *RedisEventPublisher {
	return &RedisEventPublisher{
		redisClient: client,
	}
}

// Publish публикует событие матчинга в очередь Redis
func (p *RedisEventPublisher) Publish(ctx context.Context, event MatchEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal match event: %w", err)
	}

	// LPUSH кладет событие в левую часть списка, воркер забирает справа
	if err := p.redisClient.LPush(ctx, matchEventsQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish match event to Redis: %w", err)
	}
	return nil
}

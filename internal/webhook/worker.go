package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/wingman_matching_system/internal/config"
	"github.com/sirupsen/logrus"
)

// EventWorker - воркер доставки событий матчинга на внешний вебхук
type EventWorker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         *config.Config
	httpClient  *http.Client
}

// NewEventWorker создает новый EventWorker
func NewEventWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *EventWorker {
	return &EventWorker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
	}
}

// Start запускает горутину для обработки очереди событий
func (w *EventWorker) Start(ctx context.Context) {
	w.logger.Info("Starting match event worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping match event worker.")
				return
			default:
				// BRPop - блокирующее извлечение из правой части списка,
				// 0 означает бесконечное ожидание
				result, err := w.redisClient.BRPop(ctx, 0, matchEventsQueueKey).Result()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue // Контекст отменен, но не ошибка Redis
					}
					w.logger.WithError(err).Error("Failed to pop match event from Redis")
					time.Sleep(w.cfg.WebhookBaseDelay)
					continue
				}

				// result[0] - ключ, result[1] - значение
				payload := result[1]
				var event MatchEvent
				if err := json.Unmarshal([]byte(payload), &event); err != nil {
					w.logger.WithError(err).Error("Failed to unmarshal match event from Redis")
					continue
				}

				w.deliverEvent(ctx, event, payload)
			}
		}
	}()
}

func (w *EventWorker) deliverEvent(ctx context.Context, event MatchEvent, rawPayload string) {
	log := w.logger.WithFields(logrus.Fields{
		"event_type": event.Type,
		"match_id":   event.MatchID,
	})
	log.Debug("Delivering match event...")

	if w.cfg.WebhookURL == "" {
		log.Warn("Webhook URL is not configured. Skipping event delivery.")
		return
	}

	maxRetries := w.cfg.WebhookMaxRetries
	delay := w.cfg.WebhookBaseDelay

	for i := 0; i < maxRetries; i++ {
		req, err := http.NewRequestWithContext(ctx, "POST", w.cfg.WebhookURL, bytes.NewBufferString(rawPayload))
		if err != nil {
			log.WithError(err).Errorf("Failed to create webhook request. Retries left: %d", maxRetries-1-i)
			continue
		}

		req.Header.Set("Content-Type", "application/json")

		// Добавляем HMAC подпись, если WEBHOOK_SECRET задан
		if w.cfg.WebhookSecret != "" {
			signature := generateHMACSHA256(rawPayload, w.cfg.WebhookSecret)
			req.Header.Set("X-Webhook-Signature", signature)
		}

		resp, err := w.httpClient.Do(req)
		if err != nil {
			log.WithError(err).Warnf("Failed to send match event. Retrying in %v. Retries left: %d", delay, maxRetries-1-i)
			time.Sleep(delay)
			delay *= 2 // Экспоненциальная задержка
			continue
		}

		statusCode := resp.StatusCode
		resp.Body.Close()

		if statusCode >= 200 && statusCode < 300 {
			log.Info("Match event delivered successfully.")
			return
		}

		log.Warnf("Event delivery failed with status code %d. Retrying in %v. Retries left: %d", statusCode, delay, maxRetries-1-i)
		time.Sleep(delay)
		delay *= 2 // Экспоненциальная задержка
	}

	log.Errorf("Failed to deliver match event after %d retries.", maxRetries)
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

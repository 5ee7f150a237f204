package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"example.com/zaffaf/backend/internal/models"
)

const searchCacheKey = "venues_search_v1"

// SearchCacheRepository хранит агрегированный список заведений в Redis.
// Список один на все приложение, потому и ключ фиксированный.
type SearchCacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSearchCacheRepository создает кеш результатов поиска.
func NewSearchCacheRepository(client *redis.Client, ttl time.Duration) *SearchCacheRepository {
	return &SearchCacheRepository{client: client, ttl: ttl}
}

// Get возвращает закешированный список заведений.
func (r *SearchCacheRepository) Get(ctx context.Context) ([]models.Venue, error) {
	payload, err := r.client.Get(ctx, searchCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var venues []models.Venue
	if err := json.Unmarshal(payload, &venues); err != nil {
		return nil, err
	}

	return venues, nil
}

// Set сохраняет список заведений на срок ttl.
func (r *SearchCacheRepository) Set(ctx context.Context, venues []models.Venue) error {
	payload, err := json.Marshal(venues)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, searchCacheKey, payload, r.ttl).Err()
}

// Invalidate сбрасывает закешированный список.
func (r *SearchCacheRepository) Invalidate(ctx context.Context) error {
	return r.client.Del(ctx, searchCacheKey).Err()
}

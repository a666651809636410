package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"warsztatplus/internal/models"

	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Settings caching
	GetSettings(ctx context.Context) (*models.Settings, error)
	SetSettings(ctx context.Context, settings *models.Settings, ttl time.Duration) error
	DeleteSettings(ctx context.Context) error

	// Public workshop directory
	GetPublicWorkshops(ctx context.Context) ([]*models.Workshop, error)
	SetPublicWorkshops(ctx context.Context, workshops []*models.Workshop, ttl time.Duration) error
	DeletePublicWorkshops(ctx context.Context) error

	// Public VIN lookup
	GetVINReports(ctx context.Context, vin string) ([]*models.Report, error)
	SetVINReports(ctx context.Context, vin string, reports []*models.Report, ttl time.Duration) error
	DeleteVINReports(ctx context.Context, vin string) error

	// Login rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	IncrementRateLimit(ctx context.Context, key string, window time.Duration) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	for _, scheme := range []string{"redis://", "rediss://"} {
		parsedAddr = strings.TrimPrefix(parsedAddr, scheme)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", err, parsedAddr)
	}

	return &redisCacheService{client: client}
}

const (
	settingsKey        = "warsztat:settings"
	publicWorkshopsKey = "warsztat:workshops:public"
)

func vinKey(vin string) string {
	return fmt.Sprintf("warsztat:vin:%s", vin)
}

func getJSON[T any](ctx context.Context, client *redis.Client, key string) (T, error) {
	var value T
	data, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return value, nil
	}
	if err != nil {
		return value, err
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, err
	}
	return value, nil
}

func setJSON(ctx context.Context, client *redis.Client, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, data, ttl).Err()
}

func (s *redisCacheService) GetSettings(ctx context.Context) (*models.Settings, error) {
	return getJSON[*models.Settings](ctx, s.client, settingsKey)
}

func (s *redisCacheService) SetSettings(ctx context.Context, settings *models.Settings, ttl time.Duration) error {
	return setJSON(ctx, s.client, settingsKey, settings, ttl)
}

func (s *redisCacheService) DeleteSettings(ctx context.Context) error {
	return s.client.Del(ctx, settingsKey).Err()
}

func (s *redisCacheService) GetPublicWorkshops(ctx context.Context) ([]*models.Workshop, error) {
	return getJSON[[]*models.Workshop](ctx, s.client, publicWorkshopsKey)
}

func (s *redisCacheService) SetPublicWorkshops(ctx context.Context, workshops []*models.Workshop, ttl time.Duration) error {
	return setJSON(ctx, s.client, publicWorkshopsKey, workshops, ttl)
}

func (s *redisCacheService) DeletePublicWorkshops(ctx context.Context) error {
	return s.client.Del(ctx, publicWorkshopsKey).Err()
}

func (s *redisCacheService) GetVINReports(ctx context.Context, vin string) ([]*models.Report, error) {
	return getJSON[[]*models.Report](ctx, s.client, vinKey(vin))
}

func (s *redisCacheService) SetVINReports(ctx context.Context, vin string, reports []*models.Report, ttl time.Duration) error {
	return setJSON(ctx, s.client, vinKey(vin), reports, ttl)
}

func (s *redisCacheService) DeleteVINReports(ctx context.Context, vin string) error {
	return s.client.Del(ctx, vinKey(vin)).Err()
}

func (s *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := s.client.Get(ctx, "ratelimit:"+key).Int()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return count >= limit, nil
}

func (s *redisCacheService) IncrementRateLimit(ctx context.Context, key string, window time.Duration) error {
	pipe := s.client.TxPipeline()
	pipe.Incr(ctx, "ratelimit:"+key)
	pipe.Expire(ctx, "ratelimit:"+key, window)
	_, err := pipe.Exec(ctx)
	return err
}

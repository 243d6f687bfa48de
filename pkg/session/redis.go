package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shreeji-electro/catalog-finder/pkg/common/jsoncompat"
	"github.com/shreeji-electro/catalog-finder/pkg/query"
	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

type RedisConfig struct {
	Addr     string        `mapstructure:"redis_addr"`
	Password string        `mapstructure:"redis_password"`
	DB       int           `mapstructure:"redis_db"`
	TTL      time.Duration `mapstructure:"ttl"`
	Prefix   string        `mapstructure:"prefix"`
}

// RedisStore keeps session values as JSON strings. Every read slides the
// expiry forward so a session lives for TTL after its last use.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(cfg RedisConfig) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewRedisStoreWithClient(rdb, cfg.Prefix, cfg.TTL)
}

func NewRedisStoreWithClient(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if prefix == "" {
		prefix = "catalog:"
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) get(ctx context.Context, key string, out any) (bool, error) {
	data, err := r.client.GetEx(ctx, key, r.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err = jsoncompat.Unmarshal(data, out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("dropping unreadable session value")
		r.client.Del(ctx, key)
		return false, nil
	}
	return true, nil
}

func (r *RedisStore) set(ctx context.Context, key string, value any) error {
	data, err := jsoncompat.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, r.ttl).Err()
}

func (r *RedisStore) LoadListing(ctx context.Context, sessionId string) (*query.Selection, bool, error) {
	state := query.NewSelection()
	found, err := r.get(ctx, listingKey(r.prefix, sessionId), state)
	if !found || err != nil {
		return nil, false, err
	}
	state.Normalize()
	return state, true, nil
}

func (r *RedisStore) SaveListing(ctx context.Context, sessionId string, state *query.Selection) error {
	if sessionId == "" {
		return ErrNoSession
	}
	return r.set(ctx, listingKey(r.prefix, sessionId), state)
}

func (r *RedisStore) LoadSelected(ctx context.Context, sessionId string) (types.ProductKey, bool, error) {
	var key types.ProductKey
	found, err := r.get(ctx, selectedKey(r.prefix, sessionId), &key)
	return key, found, err
}

func (r *RedisStore) SaveSelected(ctx context.Context, sessionId string, key types.ProductKey) error {
	if sessionId == "" {
		return ErrNoSession
	}
	return r.set(ctx, selectedKey(r.prefix, sessionId), key)
}

func (r *RedisStore) Clear(ctx context.Context, sessionId string) error {
	return r.client.Del(ctx, listingKey(r.prefix, sessionId), selectedKey(r.prefix, sessionId)).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

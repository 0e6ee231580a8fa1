package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"

	"gofurn.io/storefront/models"
)

// Storage persists the full cart line set under one fixed key. Absence of a
// stored value is reported as an empty set, never as an error.
type Storage interface {
	Load(ctx context.Context) ([]models.CartLine, error)
	Save(ctx context.Context, lines []models.CartLine) error
}

var _ Storage = (*FileStorage)(nil)
var _ Storage = (*RedisStorage)(nil)

// FileStorage keeps the cart as a JSON array in a single local file.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (s *FileStorage) Load(_ context.Context) ([]models.CartLine, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cart file: %w", err)
	}

	var lines []models.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("decode cart file: %w", err)
	}
	return lines, nil
}

func (s *FileStorage) Save(_ context.Context, lines []models.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create cart dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write cart file: %w", err)
	}
	return nil
}

const (
	redisCartKey = "storefront:cart:%s"

	// Abandoned carts drop out of redis after a week, matching the
	// server-side cart expiry window.
	redisCartTTL = 7 * 24 * time.Hour
)

// RedisStorage keeps the cart under a per-customer redis key so it survives
// across devices.
type RedisStorage struct {
	client     *redis.Client
	customerID string
}

func NewRedisStorage(client *redis.Client, customerID string) *RedisStorage {
	return &RedisStorage{client: client, customerID: customerID}
}

func (s *RedisStorage) key() string {
	return fmt.Sprintf(redisCartKey, s.customerID)
}

func (s *RedisStorage) Load(ctx context.Context) ([]models.CartLine, error) {
	data, err := s.client.Get(ctx, s.key()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart from redis: %w", err)
	}

	var lines []models.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("decode cart from redis: %w", err)
	}
	return lines, nil
}

func (s *RedisStorage) Save(ctx context.Context, lines []models.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.Set(ctx, s.key(), data, redisCartTTL).Err(); err != nil {
		return fmt.Errorf("set cart in redis: %w", err)
	}
	return nil
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/pkg/inventory"
	"github.com/sammyTGR/tgr-sub005/pkg/redis"
)

var (
	ErrInventoryQueryTooShort = errors.New("search query must be at least 2 characters")
	ErrInventoryUnavailable   = errors.New("inventory partner is unavailable")
	ErrInventoryItemNotFound  = errors.New("inventory item not found")
)

const (
	defaultInventoryLimit = 25
	defaultInventoryTTL   = 5 * time.Minute
	memoryCacheEntries    = 512
)

// InventorySource partner inventory lookups, satisfied by *inventory.Client
type InventorySource interface {
	Search(ctx context.Context, query string, limit int) ([]inventory.Item, error)
	GetBySKU(ctx context.Context, sku string) (*inventory.Item, error)
}

// JSONCache shared lookup cache, satisfied by *redis.Client and MemoryCache.
// GetJSON returns redis.ErrCacheMiss for absent keys.
type JSONCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// MemoryCache process-local JSONCache used when Redis is not configured.
// Entries expire after the ttl given at construction.
type MemoryCache struct {
	lru *expirable.LRU[string, []byte]
}

// NewMemoryCache creates a MemoryCache holding at most size entries.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (m *MemoryCache) GetJSON(_ context.Context, key string, dest interface{}) error {
	raw, ok := m.lru.Get(key)
	if !ok {
		return redis.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *MemoryCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.lru.Add(key, raw)
	return nil
}

// InventoryService cached partner lookups
type InventoryService interface {
	Search(ctx context.Context, req *dto.InventorySearchRequest) ([]inventory.Item, error)
	GetBySKU(ctx context.Context, sku string) (*inventory.Item, error)
}

type inventoryService struct {
	source InventorySource
	cache  JSONCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewInventoryService creates an InventoryService. A nil cache falls back to
// a MemoryCache.
func NewInventoryService(source InventorySource, cache JSONCache, ttl time.Duration, logger *zap.Logger) InventoryService {
	if ttl <= 0 {
		ttl = defaultInventoryTTL
	}
	if cache == nil {
		cache = NewMemoryCache(memoryCacheEntries, ttl)
	}
	return &inventoryService{source: source, cache: cache, ttl: ttl, logger: logger}
}

func (s *inventoryService) Search(ctx context.Context, req *dto.InventorySearchRequest) ([]inventory.Item, error) {
	query := strings.TrimSpace(req.Q)
	if len([]rune(query)) < 2 {
		return nil, ErrInventoryQueryTooShort
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultInventoryLimit
	}

	key := "inventory:search:" + strings.ToLower(query) + ":" + strconv.Itoa(limit)
	var items []inventory.Item
	if s.cached(ctx, key, &items) {
		return items, nil
	}

	items, err := s.source.Search(ctx, query, limit)
	if err != nil {
		return nil, s.mapErr("search", err)
	}
	if items == nil {
		items = []inventory.Item{}
	}
	s.store(ctx, key, items)
	return items, nil
}

func (s *inventoryService) GetBySKU(ctx context.Context, sku string) (*inventory.Item, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, ErrInventoryItemNotFound
	}

	key := "inventory:sku:" + sku
	var item inventory.Item
	if s.cached(ctx, key, &item) {
		return &item, nil
	}

	found, err := s.source.GetBySKU(ctx, sku)
	if err != nil {
		return nil, s.mapErr("get by sku", err)
	}
	s.store(ctx, key, found)
	return found, nil
}

func (s *inventoryService) cached(ctx context.Context, key string, dest interface{}) bool {
	err := s.cache.GetJSON(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, redis.ErrCacheMiss) {
		s.logger.Warn("inventory cache read failed", zap.String("key", key), zap.Error(err))
	}
	return false
}

func (s *inventoryService) store(ctx context.Context, key string, value interface{}) {
	if err := s.cache.SetJSON(ctx, key, value, s.ttl); err != nil {
		s.logger.Warn("inventory cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *inventoryService) mapErr(op string, err error) error {
	switch {
	case errors.Is(err, inventory.ErrItemNotFound):
		return ErrInventoryItemNotFound
	case errors.Is(err, inventory.ErrNotConfigured):
		return ErrInventoryUnavailable
	}
	s.logger.Error("inventory partner call failed", zap.String("op", op), zap.Error(err))
	return ErrInventoryUnavailable
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"tierboard/api/dto"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	DirectoryMemoryCacheDuration = 10 * time.Second
	DirectoryRedisCacheDuration  = 10 * time.Minute

	// The listing changes on every write. A read that loses the race with
	// Invalidate can store a stale copy, so it expires sooner.
	DirectoryListRedisCacheDuration = 30 * time.Second

	LeaderboardListKey   = "leaderboards:list"
	leaderboardKeyPrefix = "leaderboards:"

	redisTimeout = 200 * time.Millisecond
)

// DirectoryRedisClient is the part of the redis client the directory cache uses.
type DirectoryRedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// DirectoryCache sits in front of the leaderboard listing and aggregate reads.
type DirectoryCache interface {
	GetList(ctx context.Context) []*dto.LeaderboardSummary
	SetList(ctx context.Context, list []*dto.LeaderboardSummary)
	GetLeaderboard(ctx context.Context, id string) *dto.Leaderboard
	SetLeaderboard(ctx context.Context, leaderboard *dto.Leaderboard)
	Invalidate(ctx context.Context, ids ...string)
}

type directoryCache struct {
	listMem        MemCache[[]*dto.LeaderboardSummary]
	leaderboardMem MemCache[*dto.Leaderboard]
	redis          DirectoryRedisClient
	logger         *zap.Logger
}

// DirectoryCacheDeps is the dependency list for the directory cache.
// Redis may be nil, leaving only the memory level.
type DirectoryCacheDeps struct {
	ListMemCache        MemCache[[]*dto.LeaderboardSummary]
	LeaderboardMemCache MemCache[*dto.Leaderboard]
	Redis               DirectoryRedisClient
	Logger              *zap.Logger
}

// NewDirectoryCache creates the two level cache.
func NewDirectoryCache(deps *DirectoryCacheDeps) DirectoryCache {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &directoryCache{
		listMem:        deps.ListMemCache,
		leaderboardMem: deps.LeaderboardMemCache,
		redis:          deps.Redis,
		logger:         logger,
	}
}

// LeaderboardKey is the cache key of a single aggregate.
func LeaderboardKey(id string) string {
	return leaderboardKeyPrefix + id
}

// GetList returns the cached listing, or nil on a miss.
func (dc *directoryCache) GetList(ctx context.Context) []*dto.LeaderboardSummary {
	if mem := dc.listMem.Get(LeaderboardListKey); mem != nil {
		return mem
	}

	var list []*dto.LeaderboardSummary
	if !dc.getFromRedis(ctx, LeaderboardListKey, &list) || list == nil {
		return nil
	}

	dc.listMem.Set(LeaderboardListKey, list, DirectoryMemoryCacheDuration)
	return list
}

// SetList populates both levels.
func (dc *directoryCache) SetList(ctx context.Context, list []*dto.LeaderboardSummary) {
	dc.listMem.Set(LeaderboardListKey, list, DirectoryMemoryCacheDuration)
	dc.setOnRedis(ctx, LeaderboardListKey, list, DirectoryListRedisCacheDuration)
}

// GetLeaderboard returns the cached aggregate, or nil on a miss.
func (dc *directoryCache) GetLeaderboard(ctx context.Context, id string) *dto.Leaderboard {
	key := LeaderboardKey(id)

	if mem := dc.leaderboardMem.Get(key); mem != nil {
		return mem
	}

	var leaderboard *dto.Leaderboard
	if !dc.getFromRedis(ctx, key, &leaderboard) || leaderboard == nil {
		return nil
	}

	dc.leaderboardMem.Set(key, leaderboard, DirectoryMemoryCacheDuration)
	return leaderboard
}

// SetLeaderboard populates both levels.
func (dc *directoryCache) SetLeaderboard(ctx context.Context, leaderboard *dto.Leaderboard) {
	key := LeaderboardKey(leaderboard.ID)
	dc.leaderboardMem.Set(key, leaderboard, DirectoryMemoryCacheDuration)
	dc.setOnRedis(ctx, key, leaderboard, DirectoryRedisCacheDuration)
}

// Invalidate drops the listing and the given aggregates from both levels.
func (dc *directoryCache) Invalidate(ctx context.Context, ids ...string) {
	keys := []string{LeaderboardListKey}
	dc.listMem.Delete(LeaderboardListKey)

	for _, id := range ids {
		key := LeaderboardKey(id)
		dc.leaderboardMem.Delete(key)
		keys = append(keys, key)
	}

	if dc.redis == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	if err := dc.redis.Del(ctx, keys...); err != nil {
		dc.logger.Warn("couldn't invalidate redis keys", zap.Strings("keys", keys), zap.Error(err))
	}
}

// getFromRedis unmarshals the key into target. Any failure is a miss.
func (dc *directoryCache) getFromRedis(ctx context.Context, key string, target any) bool {
	if dc.redis == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	cached, err := dc.redis.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			dc.logger.Warn("couldn't read from redis", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if cached == "" {
		return false
	}

	if err := json.Unmarshal([]byte(cached), target); err != nil {
		dc.logger.Warn("invalid cached value", zap.String("key", key), zap.Error(err))
		return false
	}

	return true
}

// setOnRedis stores the JSON of value for ttl, logging failures.
func (dc *directoryCache) setOnRedis(ctx context.Context, key string, value any, ttl time.Duration) {
	if dc.redis == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	if err := dc.redis.Set(ctx, key, string(data), ttl); err != nil {
		dc.logger.Warn("couldn't write to redis", zap.String("key", key), zap.Error(err))
	}
}

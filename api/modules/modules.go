package modules

import (
	"tierboard/api/cache"
	"tierboard/api/dto"
	"tierboard/api/handlers"
	"tierboard/pkg/logger"
	"tierboard/pkg/metrics"
	"tierboard/pkg/redis"
	"tierboard/pkg/storage"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const memCacheCleanupInterval = time.Minute

// ModuleDependencies is what the handlers are built from.
// Redis may be nil, leaving the directory cache in memory only.
type ModuleDependencies struct {
	DB      *gorm.DB
	Redis   *redis.RedisClient
	Avatars storage.AvatarStore
	Logger  *zap.Logger
}

// Module containing the necessary handlers.
type Module struct {
	Router             *gin.Engine
	LeaderboardHandler *handlers.LeaderboardHandler
	MemberHandler      *handlers.MemberHandler

	listMem        cache.MemCache[[]*dto.LeaderboardSummary]
	leaderboardMem cache.MemCache[*dto.Leaderboard]
}

// Create a new module with all the necessary handlers initialized.
func NewModule(deps *ModuleDependencies) *Module {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery(), logger.GinMiddleware(log), metrics.GinMiddleware())

	listMem := cache.NewMemCache[[]*dto.LeaderboardSummary](memCacheCleanupInterval)
	leaderboardMem := cache.NewMemCache[*dto.Leaderboard](memCacheCleanupInterval)

	cacheDeps := &cache.DirectoryCacheDeps{
		ListMemCache:        listMem,
		LeaderboardMemCache: leaderboardMem,
		Logger:              log,
	}
	// Only set when present, a nil *RedisClient would be a non nil interface.
	if deps.Redis != nil {
		cacheDeps.Redis = deps.Redis
	}
	directoryCache := cache.NewDirectoryCache(cacheDeps)

	return &Module{
		Router:             router,
		LeaderboardHandler: initializeLeaderboardHandler(deps, directoryCache),
		MemberHandler:      initializeMemberHandler(deps, directoryCache),
		listMem:            listMem,
		leaderboardMem:     leaderboardMem,
	}
}

// Close stops the memory cache workers.
func (m *Module) Close() {
	m.listMem.Close()
	m.leaderboardMem.Close()
}

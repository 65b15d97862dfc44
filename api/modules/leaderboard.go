package modules

import (
	"tierboard/api/cache"
	"tierboard/api/handlers"
	leaderboardservice "tierboard/api/services/leaderboard"
)

func initializeLeaderboardHandler(deps *ModuleDependencies, directoryCache cache.DirectoryCache) *handlers.LeaderboardHandler {
	leaderboardDeps := &leaderboardservice.LeaderboardServiceDeps{
		DB:      deps.DB,
		Cache:   directoryCache,
		Avatars: deps.Avatars,
	}

	leaderboardService := leaderboardservice.NewLeaderboardService(leaderboardDeps)

	leaderboardHandlerDeps := &handlers.LeaderboardHandlerDependencies{
		LeaderboardService: leaderboardService,
	}

	return handlers.NewLeaderboardHandler(leaderboardHandlerDeps)
}

package modules

import (
	"tierboard/api/cache"
	"tierboard/api/handlers"
	memberservice "tierboard/api/services/member"
)

func initializeMemberHandler(deps *ModuleDependencies, directoryCache cache.DirectoryCache) *handlers.MemberHandler {
	memberDeps := &memberservice.MemberServiceDeps{
		DB:      deps.DB,
		Cache:   directoryCache,
		Avatars: deps.Avatars,
	}

	memberService := memberservice.NewMemberService(memberDeps)

	memberHandlerDeps := &handlers.MemberHandlerDependencies{
		MemberService: memberService,
	}

	return handlers.NewMemberHandler(memberHandlerDeps)
}

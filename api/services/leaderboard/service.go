package leaderboardservice

import (
	"context"
	"tierboard/api/cache"
	"tierboard/api/converters"
	"tierboard/api/dto"
	"tierboard/api/filters"
	leaderboardrepo "tierboard/api/repositories/leaderboard"
	memberrepo "tierboard/api/repositories/member"
	"tierboard/pkg/apperrors"
	"tierboard/pkg/database/models"
	"tierboard/pkg/logger"
	"tierboard/pkg/messages"
	"tierboard/pkg/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LeaderboardService handles the leaderboard directory: listing, creation, updates and cascading deletes.
type LeaderboardService struct {
	db                    *gorm.DB
	cache                 cache.DirectoryCache
	avatars               storage.AvatarStore
	LeaderboardRepository leaderboardrepo.LeaderboardRepository
	MemberRepository      memberrepo.MemberRepository
}

// LeaderboardServiceDeps is the dependency list for the leaderboard service.
type LeaderboardServiceDeps struct {
	DB      *gorm.DB
	Cache   cache.DirectoryCache
	Avatars storage.AvatarStore
}

// NewLeaderboardService creates a leaderboard service.
func NewLeaderboardService(deps *LeaderboardServiceDeps) *LeaderboardService {
	return &LeaderboardService{
		db:                    deps.DB,
		cache:                 deps.Cache,
		avatars:               deps.Avatars,
		LeaderboardRepository: leaderboardrepo.NewLeaderboardRepository(deps.DB),
		MemberRepository:      memberrepo.NewMemberRepository(deps.DB),
	}
}

// ListLeaderboards returns every leaderboard with its member count, most recent first.
func (ls *LeaderboardService) ListLeaderboards(ctx context.Context) ([]*dto.LeaderboardSummary, error) {
	if cached := ls.cache.GetList(ctx); cached != nil {
		return cached, nil
	}

	leaderboards, err := ls.LeaderboardRepository.List(ctx)
	if err != nil {
		return nil, apperrors.Persistence(err, "database error")
	}

	ids := make([]string, 0, len(leaderboards))
	for _, leaderboard := range leaderboards {
		ids = append(ids, leaderboard.ID)
	}

	counts, err := ls.MemberRepository.CountByLeaderboardIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Persistence(err, "database error")
	}

	result := converters.ConvertLeaderboardSummaries(leaderboards, counts)
	ls.cache.SetList(ctx, result)

	return result, nil
}

// GetLeaderboard returns the aggregate with sorted ranks.
func (ls *LeaderboardService) GetLeaderboard(ctx context.Context, id string) (*dto.Leaderboard, error) {
	if id == "" {
		return nil, apperrors.Validation(messages.LeaderboardIdRequired)
	}

	if !models.ValidID(id) {
		return nil, apperrors.NotFound(messages.LeaderboardNotFound, id)
	}

	if cached := ls.cache.GetLeaderboard(ctx, id); cached != nil {
		return cached, nil
	}

	leaderboard, err := ls.LeaderboardRepository.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.FromRepository(err, apperrors.NotFound(messages.LeaderboardNotFound, id))
	}

	result := converters.ConvertLeaderboard(leaderboard)
	ls.cache.SetLeaderboard(ctx, result)

	return result, nil
}

// CreateLeaderboard validates and stores a new leaderboard.
func (ls *LeaderboardService) CreateLeaderboard(ctx context.Context, filter *filters.CreateLeaderboardFilter) (*dto.Leaderboard, error) {
	if filter == nil {
		return nil, apperrors.Validation(messages.FiltersNotNil)
	}

	if filter.Name == "" {
		return nil, apperrors.Validation(messages.NameRequired)
	}

	if err := validateRanks(filter.Ranks); err != nil {
		return nil, err
	}

	tiers, _ := buildTiers(filter.Ranks, nil)
	leaderboard := &models.Leaderboard{
		Name:        filter.Name,
		Description: filter.Description,
		Tiers:       tiers,
	}

	if err := ls.LeaderboardRepository.Create(ctx, leaderboard); err != nil {
		return nil, apperrors.Persistence(err, "database error")
	}

	ls.cache.Invalidate(ctx, leaderboard.ID)

	return converters.ConvertLeaderboard(leaderboard), nil
}

// UpdateLeaderboard applies a partial update. Sent ranks replace the whole tier set.
func (ls *LeaderboardService) UpdateLeaderboard(ctx context.Context, filter *filters.UpdateLeaderboardFilter) (*dto.Leaderboard, error) {
	if filter == nil {
		return nil, apperrors.Validation(messages.FiltersNotNil)
	}

	if filter.ID == "" {
		return nil, apperrors.Validation(messages.LeaderboardIdRequired)
	}

	notFound := apperrors.NotFound(messages.LeaderboardNotFound, filter.ID)
	update := &leaderboardrepo.LeaderboardUpdate{Fields: make(map[string]any)}

	if filter.Name != nil {
		if *filter.Name == "" {
			return nil, apperrors.Validation(messages.NameRequired)
		}
		update.Fields["name"] = *filter.Name
	}

	if filter.Description != nil {
		update.Fields["description"] = *filter.Description
	}

	if filter.Ranks != nil {
		if err := validateRanks(filter.Ranks); err != nil {
			return nil, err
		}
	}

	if !models.ValidID(filter.ID) {
		return nil, notFound
	}

	if filter.Ranks != nil {
		// The current tiers tell which ranks keep their id and which are renames.
		current, err := ls.LeaderboardRepository.GetByID(ctx, filter.ID)
		if err != nil {
			return nil, apperrors.FromRepository(err, notFound)
		}

		update.Tiers, update.Renames = buildTiers(filter.Ranks, current.Tiers)
	}

	updated, err := ls.LeaderboardRepository.Update(ctx, filter.ID, update)
	if err != nil {
		return nil, apperrors.FromRepository(err, notFound)
	}

	ls.cache.Invalidate(ctx, filter.ID)

	return converters.ConvertLeaderboard(updated), nil
}

// DeleteLeaderboard removes the leaderboard with its tiers and members, then their avatars.
func (ls *LeaderboardService) DeleteLeaderboard(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.Validation(messages.LeaderboardIdRequired)
	}

	if !models.ValidID(id) {
		return apperrors.NotFound(messages.LeaderboardNotFound, id)
	}

	avatarPaths, err := ls.LeaderboardRepository.Delete(ctx, id)
	if err != nil {
		return apperrors.FromRepository(err, apperrors.NotFound(messages.LeaderboardNotFound, id))
	}

	ls.cache.Invalidate(ctx, id)

	// The records are gone already, a leftover file is only wasted space.
	for _, path := range avatarPaths {
		if err := ls.avatars.Delete(ctx, path); err != nil {
			logger.FromContext(ctx).Warn("couldn't delete avatar",
				zap.String("leaderboard_id", id),
				zap.String("avatar_path", path),
				zap.Error(err),
			)
		}
	}

	logger.FromContext(ctx).Info("leaderboard deleted",
		zap.String("leaderboard_id", id),
		zap.Int("members", len(avatarPaths)),
	)

	return nil
}

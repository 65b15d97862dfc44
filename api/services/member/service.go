package memberservice

import (
	"context"
	"errors"
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
	"tierboard/pkg/metrics"
	"tierboard/pkg/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MemberService places members on the tiers of a leaderboard.
type MemberService struct {
	db                    *gorm.DB
	cache                 cache.DirectoryCache
	avatars               storage.AvatarStore
	LeaderboardRepository leaderboardrepo.LeaderboardRepository
	MemberRepository      memberrepo.MemberRepository
}

// MemberServiceDeps is the dependency list for the member service.
type MemberServiceDeps struct {
	DB      *gorm.DB
	Cache   cache.DirectoryCache
	Avatars storage.AvatarStore
}

// NewMemberService creates a member service.
func NewMemberService(deps *MemberServiceDeps) *MemberService {
	return &MemberService{
		db:                    deps.DB,
		cache:                 deps.Cache,
		avatars:               deps.Avatars,
		LeaderboardRepository: leaderboardrepo.NewLeaderboardRepository(deps.DB),
		MemberRepository:      memberrepo.NewMemberRepository(deps.DB),
	}
}

// ListMembers returns the members of a leaderboard sorted by rank name and order.
// A unknown leaderboard has no members.
func (ms *MemberService) ListMembers(ctx context.Context, leaderboardID string) ([]*dto.Member, error) {
	if leaderboardID == "" {
		return nil, apperrors.Validation(messages.LeaderboardIdRequired)
	}

	if !models.ValidID(leaderboardID) {
		return []*dto.Member{}, nil
	}

	members, err := ms.MemberRepository.ListByLeaderboard(ctx, leaderboardID)
	if err != nil {
		return nil, apperrors.Persistence(err, "database error")
	}

	return converters.ConvertMembers(members), nil
}

// AddMember stores the avatar and creates the member.
// Every check runs before anything is written.
func (ms *MemberService) AddMember(ctx context.Context, filter *filters.CreateMemberFilter) (*dto.Member, error) {
	if err := validateCreate(filter); err != nil {
		return nil, err
	}

	if !models.ValidID(filter.LeaderboardID) {
		return nil, apperrors.NotFound(messages.LeaderboardNotFound, filter.LeaderboardID)
	}

	exists, err := ms.LeaderboardRepository.Exists(ctx, filter.LeaderboardID)
	if err != nil {
		return nil, apperrors.Persistence(err, "database error")
	}
	if !exists {
		return nil, apperrors.NotFound(messages.LeaderboardNotFound, filter.LeaderboardID)
	}

	avatar := filter.Avatar
	avatarPath, err := ms.avatars.Save(ctx, avatar.Filename, avatar.ContentType, avatar.Content, avatar.Size)
	if err != nil {
		return nil, apperrors.Persistence(err, "couldn't store the avatar")
	}

	member := &models.Member{
		LeaderboardID: filter.LeaderboardID,
		Name:          filter.Name,
		AvatarPath:    avatarPath,
		RankName:      filter.RankName,
		SortOrder:     filter.Order,
	}

	if err := ms.MemberRepository.Create(ctx, member); err != nil {
		ms.removeAvatar(ctx, avatarPath)
		return nil, apperrors.Persistence(err, "database error")
	}

	ms.cache.Invalidate(ctx)

	return converters.ConvertMember(member), nil
}

func validateCreate(filter *filters.CreateMemberFilter) error {
	if filter == nil {
		return apperrors.Validation(messages.FiltersNotNil)
	}
	if filter.LeaderboardID == "" {
		return apperrors.Validation(messages.LeaderboardIdRequired)
	}
	if filter.Name == "" {
		return apperrors.Validation(messages.NameRequired)
	}
	if filter.RankName == "" {
		return apperrors.Validation(messages.RankNameRequired)
	}
	if filter.Avatar == nil {
		return apperrors.Validation(messages.AvatarRequired)
	}
	return storage.ValidateAvatar(filter.Avatar.Filename, filter.Avatar.ContentType, filter.Avatar.Size)
}

// updateFields returns the columns a update sets. Sent names can't be blank.
func updateFields(filter *filters.UpdateMemberFilter) (map[string]any, error) {
	fields := make(map[string]any)

	if filter.Name != nil {
		if *filter.Name == "" {
			return nil, apperrors.Validation(messages.NameRequired)
		}
		fields["name"] = *filter.Name
	}

	if filter.RankName != nil {
		if *filter.RankName == "" {
			return nil, apperrors.Validation(messages.RankNameRequired)
		}
		fields["rank_name"] = *filter.RankName
	}

	if filter.Order != nil {
		fields["sort_order"] = *filter.Order
	}

	return fields, nil
}

// UpdateMember changes only the sent fields. Moving a member to another tier is a update of its rank name.
func (ms *MemberService) UpdateMember(ctx context.Context, filter *filters.UpdateMemberFilter) (*dto.Member, error) {
	if filter == nil {
		return nil, apperrors.Validation(messages.FiltersNotNil)
	}

	fields, err := updateFields(filter)
	if err != nil {
		return nil, err
	}

	if !models.ValidID(filter.ID) {
		return nil, apperrors.NotFound(messages.MemberNotFound, filter.ID)
	}

	member, err := ms.MemberRepository.Update(ctx, filter.ID, fields)
	if err != nil {
		return nil, apperrors.FromRepository(err, apperrors.NotFound(messages.MemberNotFound, filter.ID))
	}

	if filter.RankName != nil {
		metrics.MemberMoves.Inc()
	}

	ms.cache.Invalidate(ctx)

	return converters.ConvertMember(member), nil
}

// BatchReorder applies each update on its own, in order.
// The result is positional, with nil for ids that don't resolve.
// A database failure stops the batch; the updates applied before it are kept.
func (ms *MemberService) BatchReorder(ctx context.Context, updates []*filters.UpdateMemberFilter) ([]*dto.Member, error) {
	if updates == nil {
		return nil, apperrors.Validation(messages.UpdatesRequired)
	}

	batch := make([]map[string]any, len(updates))
	for i, update := range updates {
		if update == nil {
			continue
		}
		fields, err := updateFields(update)
		if err != nil {
			return nil, err
		}
		batch[i] = fields
	}

	results := make([]*dto.Member, len(updates))
	applied := 0

	defer func() {
		if applied > 0 {
			ms.cache.Invalidate(ctx)
		}
	}()

	for i, update := range updates {
		// Ids that aren't uuids can't resolve.
		if update == nil || !models.ValidID(update.ID) {
			continue
		}

		member, err := ms.MemberRepository.Update(ctx, update.ID, batch[i])
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}

			logger.FromContext(ctx).Error("batch reorder stopped",
				zap.Int("index", i),
				zap.Int("applied", applied),
				zap.Error(err),
			)
			return nil, apperrors.Persistence(err, "database error")
		}

		applied++
		if update.RankName != nil {
			metrics.MemberMoves.Inc()
		}
		results[i] = converters.ConvertMember(member)
	}

	return results, nil
}

// DeleteMember removes the member, then its avatar.
func (ms *MemberService) DeleteMember(ctx context.Context, id string) error {
	if !models.ValidID(id) {
		return apperrors.NotFound(messages.MemberNotFound, id)
	}

	member, err := ms.MemberRepository.Delete(ctx, id)
	if err != nil {
		return apperrors.FromRepository(err, apperrors.NotFound(messages.MemberNotFound, id))
	}

	ms.cache.Invalidate(ctx)
	ms.removeAvatar(ctx, member.AvatarPath)

	return nil
}

// removeAvatar deletes a stored avatar, only logging failures.
func (ms *MemberService) removeAvatar(ctx context.Context, path string) {
	if err := ms.avatars.Delete(ctx, path); err != nil {
		logger.FromContext(ctx).Warn("couldn't delete avatar", zap.String("avatar_path", path), zap.Error(err))
	}
}

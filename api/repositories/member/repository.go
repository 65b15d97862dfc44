package repositories

import (
	"context"
	"fmt"
	"maps"
	"tierboard/pkg/database/models"
	"time"

	"gorm.io/gorm"
)

// MemberRepository is the public interface for accessing the members.
type MemberRepository interface {
	ListByLeaderboard(ctx context.Context, leaderboardID string) ([]*models.Member, error)
	GetByID(ctx context.Context, id string) (*models.Member, error)
	Create(ctx context.Context, member *models.Member) error
	Update(ctx context.Context, id string, fields map[string]any) (*models.Member, error)
	Delete(ctx context.Context, id string) (*models.Member, error)
	CountByLeaderboardIDs(ctx context.Context, leaderboardIDs []string) (map[string]int64, error)
	DeleteOrphans(ctx context.Context) ([]*models.Member, error)
}

// memberRepository repository structure.
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a member repository.
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// ListByLeaderboard returns the members grouped by rank name, then by their order inside the rank.
func (r *memberRepository) ListByLeaderboard(ctx context.Context, leaderboardID string) ([]*models.Member, error) {
	var members []*models.Member

	err := r.db.WithContext(ctx).
		Where("leaderboard_id = ?", leaderboardID).
		Order("rank_name ASC").
		Order("sort_order ASC").
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("couldn't list the members of %s: %w", leaderboardID, err)
	}

	return members, nil
}

// GetByID returns the member, or gorm.ErrRecordNotFound.
func (r *memberRepository) GetByID(ctx context.Context, id string) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error; err != nil {
		return nil, fmt.Errorf("couldn't get the member %s: %w", id, err)
	}
	return &member, nil
}

func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return fmt.Errorf("couldn't create the member: %w", err)
	}
	return nil
}

// Update sets the given columns and returns the updated member.
// Empty fields only touch updated_at.
func (r *memberRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.Member, error) {
	var member models.Member

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&member).Error; err != nil {
			return err
		}

		values := maps.Clone(fields)
		if values == nil {
			values = make(map[string]any)
		}
		values["updated_at"] = time.Now()

		if err := tx.Model(&models.Member{}).Where("id = ?", id).Updates(values).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).First(&member).Error
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't update the member %s: %w", id, err)
	}

	return &member, nil
}

// Delete removes the member and returns what was removed.
func (r *memberRepository) Delete(ctx context.Context, id string) (*models.Member, error) {
	var member models.Member

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&member).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Member{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't delete the member %s: %w", id, err)
	}

	return &member, nil
}

// CountByLeaderboardIDs counts the members of each leaderboard.
// Leaderboards without members are absent from the result.
func (r *memberRepository) CountByLeaderboardIDs(ctx context.Context, leaderboardIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(leaderboardIDs))
	if len(leaderboardIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		LeaderboardID string
		Total         int64
	}

	err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Select("leaderboard_id, COUNT(*) AS total").
		Where("leaderboard_id IN ?", leaderboardIDs).
		Group("leaderboard_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("couldn't count the members: %w", err)
	}

	for _, row := range rows {
		counts[row.LeaderboardID] = row.Total
	}

	return counts, nil
}

// DeleteOrphans removes the members whose leaderboard no longer exists and returns them.
func (r *memberRepository) DeleteOrphans(ctx context.Context) ([]*models.Member, error) {
	var orphans []*models.Member

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("NOT EXISTS (SELECT 1 FROM leaderboards WHERE leaderboards.id = members.leaderboard_id)").
			Find(&orphans).Error
		if err != nil || len(orphans) == 0 {
			return err
		}

		ids := make([]string, 0, len(orphans))
		for _, orphan := range orphans {
			ids = append(ids, orphan.ID)
		}

		return tx.Where("id IN ?", ids).Delete(&models.Member{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't delete the orphan members: %w", err)
	}

	return orphans, nil
}

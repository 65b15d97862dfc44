package repositories

import (
	"context"
	"fmt"
	"maps"
	"tierboard/pkg/database/models"
	"time"

	"gorm.io/gorm"
)

// LeaderboardRepository is the public interface for accessing the leaderboards and their tiers.
type LeaderboardRepository interface {
	List(ctx context.Context) ([]*models.Leaderboard, error)
	GetByID(ctx context.Context, id string) (*models.Leaderboard, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, leaderboard *models.Leaderboard) error
	Update(ctx context.Context, id string, update *LeaderboardUpdate) (*models.Leaderboard, error)
	Delete(ctx context.Context, id string) ([]string, error)
}

// LeaderboardUpdate describes the changes applied by Update.
type LeaderboardUpdate struct {
	// Fields are leaderboard columns to set.
	Fields map[string]any

	// Tiers replaces the whole tier set when not nil.
	Tiers []models.Tier

	// Renames maps a previous tier name to its new one.
	// Members bound to the previous name follow the tier.
	Renames map[string]string
}

// leaderboardRepository repository structure.
type leaderboardRepository struct {
	db *gorm.DB
}

// NewLeaderboardRepository creates a leaderboard repository.
func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

// preloadTiers loads the tiers already in display order.
func preloadTiers(db *gorm.DB) *gorm.DB {
	return db.Preload("Tiers", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, position ASC")
	})
}

// List returns every leaderboard, most recently created first.
func (r *leaderboardRepository) List(ctx context.Context) ([]*models.Leaderboard, error) {
	var leaderboards []*models.Leaderboard

	err := preloadTiers(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Order("id ASC").
		Find(&leaderboards).Error
	if err != nil {
		return nil, fmt.Errorf("couldn't list the leaderboards: %w", err)
	}

	return leaderboards, nil
}

// GetByID returns the leaderboard with its tiers, or gorm.ErrRecordNotFound.
func (r *leaderboardRepository) GetByID(ctx context.Context, id string) (*models.Leaderboard, error) {
	leaderboard, err := getByID(r.db.WithContext(ctx), id)
	if err != nil {
		return nil, fmt.Errorf("couldn't get the leaderboard %s: %w", id, err)
	}
	return leaderboard, nil
}

func getByID(db *gorm.DB, id string) (*models.Leaderboard, error) {
	var leaderboard models.Leaderboard
	if err := preloadTiers(db).Where("id = ?", id).First(&leaderboard).Error; err != nil {
		return nil, err
	}
	return &leaderboard, nil
}

// Exists checks the leaderboard without loading it.
func (r *leaderboardRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Leaderboard{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("couldn't check the leaderboard %s: %w", id, err)
	}
	return count > 0, nil
}

// Create inserts the leaderboard together with its tiers.
func (r *leaderboardRepository) Create(ctx context.Context, leaderboard *models.Leaderboard) error {
	if err := r.db.WithContext(ctx).Create(leaderboard).Error; err != nil {
		return fmt.Errorf("couldn't create the leaderboard: %w", err)
	}
	return nil
}

// Update applies the changes in a single transaction and returns the updated leaderboard.
func (r *leaderboardRepository) Update(ctx context.Context, id string, update *LeaderboardUpdate) (*models.Leaderboard, error) {
	var updated *models.Leaderboard

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Leaderboard
		if err := tx.Select("id").Where("id = ?", id).First(&current).Error; err != nil {
			return err
		}

		now := time.Now()
		fields := maps.Clone(update.Fields)
		if fields == nil {
			fields = make(map[string]any)
		}
		fields["updated_at"] = now

		if err := tx.Model(&models.Leaderboard{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return err
		}

		if update.Tiers != nil {
			if err := replaceTiers(tx, id, update.Tiers, update.Renames, now); err != nil {
				return err
			}
		}

		var err error
		updated, err = getByID(tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't update the leaderboard %s: %w", id, err)
	}

	return updated, nil
}

// replaceTiers swaps the tier set and rebinds the members of renamed tiers.
// Member ids are collected before any write, so two tiers can exchange names.
func replaceTiers(tx *gorm.DB, leaderboardID string, tiers []models.Tier, renames map[string]string, now time.Time) error {
	rebinds := make(map[string][]string, len(renames))
	for previous, next := range renames {
		var ids []string
		err := tx.Model(&models.Member{}).
			Where("leaderboard_id = ? AND rank_name = ?", leaderboardID, previous).
			Pluck("id", &ids).Error
		if err != nil {
			return err
		}
		if len(ids) > 0 {
			rebinds[next] = ids
		}
	}

	if err := tx.Where("leaderboard_id = ?", leaderboardID).Delete(&models.Tier{}).Error; err != nil {
		return err
	}

	if len(tiers) > 0 {
		for i := range tiers {
			tiers[i].LeaderboardID = leaderboardID
		}
		if err := tx.Create(&tiers).Error; err != nil {
			return err
		}
	}

	for rankName, ids := range rebinds {
		err := tx.Model(&models.Member{}).
			Where("id IN ?", ids).
			Updates(map[string]any{"rank_name": rankName, "updated_at": now}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// Delete removes the members, the tiers and the leaderboard in one transaction.
// Returns the avatar paths of the removed members.
func (r *leaderboardRepository) Delete(ctx context.Context, id string) ([]string, error) {
	var avatarPaths []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Leaderboard
		if err := tx.Select("id").Where("id = ?", id).First(&current).Error; err != nil {
			return err
		}

		err := tx.Model(&models.Member{}).
			Where("leaderboard_id = ?", id).
			Pluck("avatar_path", &avatarPaths).Error
		if err != nil {
			return err
		}

		if err := tx.Where("leaderboard_id = ?", id).Delete(&models.Member{}).Error; err != nil {
			return err
		}

		if err := tx.Where("leaderboard_id = ?", id).Delete(&models.Tier{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&models.Leaderboard{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't delete the leaderboard %s: %w", id, err)
	}

	return avatarPaths, nil
}

package jobs

import (
	"context"
	"fmt"
	memberrepo "tierboard/api/repositories/member"
	"tierboard/pkg/logger"
	"tierboard/pkg/metrics"
	"tierboard/pkg/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrphanSweeper removes the members left behind by a leaderboard that no longer exists.
type OrphanSweeper struct {
	MemberRepository memberrepo.MemberRepository
	Avatars          storage.AvatarStore
}

// NewOrphanSweeper creates the sweeper on top of the database.
func NewOrphanSweeper(db *gorm.DB, avatars storage.AvatarStore) *OrphanSweeper {
	return &OrphanSweeper{
		MemberRepository: memberrepo.NewMemberRepository(db),
		Avatars:          avatars,
	}
}

// Run deletes the orphan members, then their avatars, and returns how many members were removed.
// Avatar failures are logged and don't fail the run.
func (s *OrphanSweeper) Run(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	orphans, err := s.MemberRepository.DeleteOrphans(ctx)
	if err != nil {
		return 0, fmt.Errorf("couldn't sweep the orphan members: %w", err)
	}

	avatarFailures := 0
	for _, orphan := range orphans {
		if err := s.Avatars.Delete(ctx, orphan.AvatarPath); err != nil {
			avatarFailures++
			log.Warn("couldn't delete orphan avatar", zap.String("avatar_path", orphan.AvatarPath), zap.Error(err))
		}
	}

	metrics.OrphansSwept.Add(float64(len(orphans)))
	log.Info("orphan sweep finished",
		zap.Int("members", len(orphans)),
		zap.Int("avatar_failures", avatarFailures),
	)

	return len(orphans), nil
}

// Task is the gocron entrypoint.
func (s *OrphanSweeper) Task() error {
	_, err := s.Run(context.Background())
	return err
}

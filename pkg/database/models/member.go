package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Member is placed in exactly one tier of one leaderboard.
// The tier is referenced by its name, not by the tier id.
type Member struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	LeaderboardID string `gorm:"type:uuid;not null;index:idx_member_placement,priority:1"`
	Name          string `gorm:"type:varchar(200);not null"`
	AvatarPath    string `gorm:"type:text;not null"`
	RankName      string `gorm:"type:varchar(100);not null;index:idx_member_placement,priority:2"`
	SortOrder     int    `gorm:"column:sort_order;not null;default:0;index:idx_member_placement,priority:3"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Set the id when the caller didn't.
func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// All returns every model, in creation order.
func All() []any {
	return []any{&Leaderboard{}, &Tier{}, &Member{}}
}

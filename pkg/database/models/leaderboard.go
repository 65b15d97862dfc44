package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Leaderboard is a named collection of tiers.
type Leaderboard struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	Name        string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:text;not null;default:''"`
	Tiers       []Tier `gorm:"foreignKey:LeaderboardID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// Tier is a ranked bucket of a leaderboard.
// Members bind to it through the name, which is unique inside the leaderboard.
type Tier struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	LeaderboardID string `gorm:"type:uuid;not null;uniqueIndex:idx_tier_leaderboard_name"`
	Name          string `gorm:"type:varchar(100);not null;uniqueIndex:idx_tier_leaderboard_name"`
	Color         string `gorm:"type:varchar(50);not null"`
	SortOrder     int    `gorm:"column:sort_order;not null"`

	// Position is the index the tier had on the request, used to break SortOrder ties.
	Position int `gorm:"not null"`
}

// Set the id when the caller didn't.
func (l *Leaderboard) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// Set the id when the caller didn't.
func (t *Tier) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

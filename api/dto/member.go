package dto

import "time"

// Member is a placed member.
type Member struct {
	ID            string    `json:"id"`
	LeaderboardID string    `json:"leaderboardId"`
	Name          string    `json:"name"`
	AvatarPath    string    `json:"avatarPath"`
	RankName      string    `json:"rankName"`
	Order         int       `json:"order"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// DeleteResult is returned by the delete endpoints.
type DeleteResult struct {
	Message string `json:"message"`
}

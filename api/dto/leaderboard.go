package dto

import "time"

// Rank is a tier of a leaderboard as the clients see it.
type Rank struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

// Leaderboard is the full aggregate with its ranks already sorted.
type Leaderboard struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Ranks       []Rank    `json:"ranks"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LeaderboardSummary is a entry of the leaderboard listing.
type LeaderboardSummary struct {
	Leaderboard
	MemberCount int64 `json:"memberCount"`
}

package filters

import "strings"

// Path parameters of the single leaderboard routes.
type LeaderboardURIParams struct {
	ID string `uri:"id" binding:"required"`
}

// RankParams is a tier as sent by the clients.
type RankParams struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Order *int   `json:"order"`
}

// Body of the leaderboard creation.
type CreateLeaderboardParams struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Ranks       []RankParams `json:"ranks"`
}

// Body of the leaderboard update. Absent fields are kept.
type UpdateLeaderboardParams struct {
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	Ranks       []RankParams `json:"ranks"`
}

// RankFilter is a trimmed rank.
type RankFilter struct {
	ID    string
	Name  string
	Color string
	Order *int
}

type CreateLeaderboardFilter struct {
	Name        string
	Description string
	Ranks       []RankFilter
}

// UpdateLeaderboardFilter keeps nil for every field that wasn't sent.
type UpdateLeaderboardFilter struct {
	ID          string
	Name        *string
	Description *string
	Ranks       []RankFilter
}

func newRankFilters(params []RankParams) []RankFilter {
	if params == nil {
		return nil
	}

	ranks := make([]RankFilter, 0, len(params))
	for _, rank := range params {
		ranks = append(ranks, RankFilter{
			ID:    strings.TrimSpace(rank.ID),
			Name:  strings.TrimSpace(rank.Name),
			Color: strings.TrimSpace(rank.Color),
			Order: rank.Order,
		})
	}
	return ranks
}

// NewCreateLeaderboardFilter trims the creation params.
func NewCreateLeaderboardFilter(params CreateLeaderboardParams) *CreateLeaderboardFilter {
	return &CreateLeaderboardFilter{
		Name:        strings.TrimSpace(params.Name),
		Description: params.Description,
		Ranks:       newRankFilters(params.Ranks),
	}
}

// NewUpdateLeaderboardFilter trims the update params of the given leaderboard.
func NewUpdateLeaderboardFilter(id string, params UpdateLeaderboardParams) *UpdateLeaderboardFilter {
	filter := &UpdateLeaderboardFilter{
		ID:          id,
		Description: params.Description,
		Ranks:       newRankFilters(params.Ranks),
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		filter.Name = &name
	}

	return filter
}

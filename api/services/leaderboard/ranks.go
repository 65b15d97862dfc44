package leaderboardservice

import (
	"tierboard/api/filters"
	"tierboard/pkg/apperrors"
	"tierboard/pkg/database/models"
	"tierboard/pkg/messages"
)

// validateRanks requires at least one rank, each named and colored, with unique names.
func validateRanks(ranks []filters.RankFilter) error {
	if len(ranks) == 0 {
		return apperrors.Validation(messages.RanksRequired)
	}

	seen := make(map[string]struct{}, len(ranks))
	for i, rank := range ranks {
		if rank.Name == "" {
			return apperrors.Validation(messages.RankNameRequiredAt, i)
		}
		if rank.Color == "" {
			return apperrors.Validation(messages.RankColorRequired, i)
		}
		if _, exists := seen[rank.Name]; exists {
			return apperrors.Validation(messages.DuplicateRankName, rank.Name)
		}
		seen[rank.Name] = struct{}{}
	}

	return nil
}

// buildTiers turns validated ranks into tiers.
// A rank carrying the id of a existing tier keeps it; when its name changed the
// previous name is returned in the renames, mapped to the new one.
func buildTiers(ranks []filters.RankFilter, existing []models.Tier) ([]models.Tier, map[string]string) {
	byID := make(map[string]models.Tier, len(existing))
	for _, tier := range existing {
		byID[tier.ID] = tier
	}

	tiers := make([]models.Tier, 0, len(ranks))
	renames := make(map[string]string)

	for i, rank := range ranks {
		order := i
		if rank.Order != nil {
			order = *rank.Order
		}

		tier := models.Tier{
			Name:      rank.Name,
			Color:     rank.Color,
			SortOrder: order,
			Position:  i,
		}

		if previous, ok := byID[rank.ID]; ok && rank.ID != "" {
			tier.ID = previous.ID
			if previous.Name != rank.Name {
				renames[previous.Name] = rank.Name
			}

			// An id sent twice only binds the first rank.
			delete(byID, rank.ID)
		}

		tiers = append(tiers, tier)
	}

	return tiers, renames
}

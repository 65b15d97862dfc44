package converters

import (
	"tierboard/api/dto"
	"tierboard/pkg/database/models"
)

func ConvertMember(member *models.Member) *dto.Member {
	return &dto.Member{
		ID:            member.ID,
		LeaderboardID: member.LeaderboardID,
		Name:          member.Name,
		AvatarPath:    member.AvatarPath,
		RankName:      member.RankName,
		Order:         member.SortOrder,
		CreatedAt:     member.CreatedAt,
		UpdatedAt:     member.UpdatedAt,
	}
}

// ConvertMembers keeps the repository order.
func ConvertMembers(members []*models.Member) []*dto.Member {
	result := make([]*dto.Member, 0, len(members))
	for _, member := range members {
		result = append(result, ConvertMember(member))
	}
	return result
}

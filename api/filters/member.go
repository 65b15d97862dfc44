package filters

import (
	"io"
	"strings"
)

// Query parameters of the member listing.
type ListMembersParams struct {
	LeaderboardID string `form:"leaderboardId"`
}

// Path parameters of the single member routes.
type MemberURIParams struct {
	ID string `uri:"id" binding:"required"`
}

// Multipart fields of the member creation. The avatar comes as a file part.
type CreateMemberParams struct {
	LeaderboardID string `form:"leaderboardId"`
	Name          string `form:"name"`
	RankName      string `form:"rankName"`
	Order         int    `form:"order"`
}

// AvatarFile is an uploaded image.
type AvatarFile struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Body of the member update. Absent fields are kept.
type UpdateMemberParams struct {
	Name     *string `json:"name"`
	RankName *string `json:"rankName"`
	Order    *int    `json:"order"`
}

// ReorderUpdateParams is a entry of the batch reorder.
type ReorderUpdateParams struct {
	ID       string  `json:"id"`
	RankName *string `json:"rankName"`
	Order    *int    `json:"order"`
}

// Body of the batch reorder.
type BatchReorderParams struct {
	Updates []ReorderUpdateParams `json:"updates"`
}

type CreateMemberFilter struct {
	LeaderboardID string
	Name          string
	RankName      string
	Order         int
	Avatar        *AvatarFile
}

// UpdateMemberFilter keeps nil for every field that wasn't sent.
type UpdateMemberFilter struct {
	ID       string
	Name     *string
	RankName *string
	Order    *int
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	result := strings.TrimSpace(*value)
	return &result
}

// NewListMembersFilter returns the trimmed leaderboard id.
func NewListMembersFilter(params ListMembersParams) string {
	return strings.TrimSpace(params.LeaderboardID)
}

// NewCreateMemberFilter trims the creation fields. Avatar is nil when no file was sent.
func NewCreateMemberFilter(params CreateMemberParams, avatar *AvatarFile) *CreateMemberFilter {
	return &CreateMemberFilter{
		LeaderboardID: strings.TrimSpace(params.LeaderboardID),
		Name:          strings.TrimSpace(params.Name),
		RankName:      strings.TrimSpace(params.RankName),
		Order:         params.Order,
		Avatar:        avatar,
	}
}

// NewUpdateMemberFilter trims the update of the given member.
func NewUpdateMemberFilter(id string, params UpdateMemberParams) *UpdateMemberFilter {
	return &UpdateMemberFilter{
		ID:       id,
		Name:     trimmed(params.Name),
		RankName: trimmed(params.RankName),
		Order:    params.Order,
	}
}

// NewBatchReorderFilter keeps the entries in the request order.
// Returns nil when the updates were not sent.
func NewBatchReorderFilter(params BatchReorderParams) []*UpdateMemberFilter {
	if params.Updates == nil {
		return nil
	}

	updates := make([]*UpdateMemberFilter, 0, len(params.Updates))
	for _, update := range params.Updates {
		updates = append(updates, &UpdateMemberFilter{
			ID:       strings.TrimSpace(update.ID),
			RankName: trimmed(update.RankName),
			Order:    update.Order,
		})
	}
	return updates
}

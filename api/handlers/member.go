package handlers

import (
	"context"
	"errors"
	"net/http"
	"tierboard/api/dto"
	"tierboard/api/filters"
	"tierboard/pkg/apperrors"
	"tierboard/pkg/messages"
	"tierboard/pkg/storage"

	"github.com/gin-gonic/gin"
)

const (
	avatarField = "avatar"

	// maxMemberFormSize caps the whole multipart body: one avatar plus room for the text fields and part headers.
	maxMemberFormSize = storage.MaxAvatarSize + 1<<20
)

// MemberService is what the member handler needs from the service layer.
type MemberService interface {
	ListMembers(ctx context.Context, leaderboardID string) ([]*dto.Member, error)
	AddMember(ctx context.Context, filter *filters.CreateMemberFilter) (*dto.Member, error)
	UpdateMember(ctx context.Context, filter *filters.UpdateMemberFilter) (*dto.Member, error)
	BatchReorder(ctx context.Context, updates []*filters.UpdateMemberFilter) ([]*dto.Member, error)
	DeleteMember(ctx context.Context, id string) error
}

// MemberHandler is the handler for the member endpoints.
type MemberHandler struct {
	memberService MemberService
}

type MemberHandlerDependencies struct {
	MemberService MemberService
}

// NewMemberHandler creates a new instance of the member handler.
func NewMemberHandler(deps *MemberHandlerDependencies) *MemberHandler {
	return &MemberHandler{
		memberService: deps.MemberService,
	}
}

// ListMembers handles the member listing of a leaderboard.
func (h *MemberHandler) ListMembers(c *gin.Context) {
	var qp filters.ListMembersParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.memberService.ListMembers(c.Request.Context(), filters.NewListMembersFilter(qp))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// AddMember handles the multipart member creation.
func (h *MemberHandler) AddMember(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxMemberFormSize)

	var params filters.CreateMemberParams
	if err := c.ShouldBind(&params); err != nil {
		respondFormError(c, err)
		return
	}

	avatar, closeAvatar, err := readAvatar(c)
	if err != nil {
		respondFormError(c, err)
		return
	}
	defer closeAvatar()

	result, err := h.memberService.AddMember(c.Request.Context(), filters.NewCreateMemberFilter(params, avatar))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"result": result})
}

// respondFormError answers a unreadable member form. A body over the cap can only be a oversized avatar.
func respondFormError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(c, apperrors.Validation(messages.AvatarTooLarge, storage.MaxAvatarSize>>20))
		return
	}
	respondBindError(c, err)
}

// readAvatar opens the avatar part. A request without it gives a nil avatar, left for the service to reject.
func readAvatar(c *gin.Context) (*filters.AvatarFile, func(), error) {
	noop := func() {}

	header, err := c.FormFile(avatarField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, noop, err
	}

	avatar := &filters.AvatarFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}

	return avatar, func() { file.Close() }, nil
}

// UpdateMember handles partial updates, including the drag and drop moves.
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	var uri filters.MemberURIParams
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBindError(c, err)
		return
	}

	var params filters.UpdateMemberParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.memberService.UpdateMember(c.Request.Context(), filters.NewUpdateMemberFilter(uri.ID, params))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// BatchReorder handles the batch of independent moves.
func (h *MemberHandler) BatchReorder(c *gin.Context) {
	var params filters.BatchReorderParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.memberService.BatchReorder(c.Request.Context(), filters.NewBatchReorderFilter(params))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// DeleteMember handles the member removal.
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	var uri filters.MemberURIParams
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.memberService.DeleteMember(c.Request.Context(), uri.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": dto.DeleteResult{Message: messages.MemberDeleted}})
}

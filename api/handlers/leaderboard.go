package handlers

import (
	"context"
	"net/http"
	"tierboard/api/dto"
	"tierboard/api/filters"
	"tierboard/pkg/messages"

	"github.com/gin-gonic/gin"
)

// LeaderboardService is what the leaderboard handler needs from the service layer.
type LeaderboardService interface {
	ListLeaderboards(ctx context.Context) ([]*dto.LeaderboardSummary, error)
	GetLeaderboard(ctx context.Context, id string) (*dto.Leaderboard, error)
	CreateLeaderboard(ctx context.Context, filter *filters.CreateLeaderboardFilter) (*dto.Leaderboard, error)
	UpdateLeaderboard(ctx context.Context, filter *filters.UpdateLeaderboardFilter) (*dto.Leaderboard, error)
	DeleteLeaderboard(ctx context.Context, id string) error
}

// LeaderboardHandler is the handler for the leaderboard endpoints.
type LeaderboardHandler struct {
	leaderboardService LeaderboardService
}

type LeaderboardHandlerDependencies struct {
	LeaderboardService LeaderboardService
}

// NewLeaderboardHandler creates a new instance of the leaderboard handler.
func NewLeaderboardHandler(deps *LeaderboardHandlerDependencies) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: deps.LeaderboardService,
	}
}

// ListLeaderboards handles the listing with member counts.
func (h *LeaderboardHandler) ListLeaderboards(c *gin.Context) {
	result, err := h.leaderboardService.ListLeaderboards(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// GetLeaderboard handles requests for a single leaderboard.
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	var uri filters.LeaderboardURIParams
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.leaderboardService.GetLeaderboard(c.Request.Context(), uri.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// CreateLeaderboard handles the leaderboard creation.
func (h *LeaderboardHandler) CreateLeaderboard(c *gin.Context) {
	var params filters.CreateLeaderboardParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.leaderboardService.CreateLeaderboard(c.Request.Context(), filters.NewCreateLeaderboardFilter(params))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"result": result})
}

// UpdateLeaderboard handles partial updates of a leaderboard.
func (h *LeaderboardHandler) UpdateLeaderboard(c *gin.Context) {
	var uri filters.LeaderboardURIParams
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBindError(c, err)
		return
	}

	var params filters.UpdateLeaderboardParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.leaderboardService.UpdateLeaderboard(c.Request.Context(), filters.NewUpdateLeaderboardFilter(uri.ID, params))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// DeleteLeaderboard handles the cascading delete.
func (h *LeaderboardHandler) DeleteLeaderboard(c *gin.Context) {
	var uri filters.LeaderboardURIParams
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.leaderboardService.DeleteLeaderboard(c.Request.Context(), uri.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": dto.DeleteResult{Message: messages.LeaderboardDeleted}})
}

package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codeforge/backend/internal/domain"
	"github.com/codeforge/backend/internal/service"
)

// StandingsHandler serves scoreboard computation requests
type StandingsHandler struct {
	standingsService *service.StandingsService
}

// NewStandingsHandler creates a new standings handler
func NewStandingsHandler(standingsService *service.StandingsService) *StandingsHandler {
	return &StandingsHandler{
		standingsService: standingsService,
	}
}

// GetLeaderboard computes the contest scoreboard from fresh judge data.
// GET /api/contests/slug/:slug/leaderboard
func (h *StandingsHandler) GetLeaderboard(c *gin.Context) {
	leaderboard, err := h.standingsService.ComputeLeaderboardBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrContestNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Contest not found",
			})
		case errors.Is(err, domain.ErrNoProblems), errors.Is(err, domain.ErrInvalidParticipant):
			// Upstream data-integrity bug, not a transient failure
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": err.Error(),
			})
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Leaderboard computation timed out; retry shortly",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to compute leaderboard",
			})
		}
		return
	}

	c.JSON(http.StatusOK, leaderboard)
}

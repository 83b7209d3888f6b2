package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/codeforge/backend/internal/domain"
	"github.com/codeforge/backend/internal/service"
)

// ContestHandler handles contest-related HTTP requests
type ContestHandler struct {
	contestService *service.ContestService
}

// NewContestHandler creates a new contest handler
func NewContestHandler(contestService *service.ContestService) *ContestHandler {
	return &ContestHandler{
		contestService: contestService,
	}
}

// CreateContest creates a new contest
// POST /api/contests
func (h *ContestHandler) CreateContest(c *gin.Context) {
	var req domain.CreateContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	contest, err := h.contestService.CreateContest(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidProblemLink):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "One of the problem links is not a valid contest problem URL",
			})
		case errors.Is(err, domain.ErrContestProblemLimit):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "A contest holds at most 26 problems",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create contest",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, contest.ToResponse(time.Now()))
}

// GetContests lists all contests
// GET /api/contests
func (h *ContestHandler) GetContests(c *gin.Context) {
	contests, err := h.contestService.ListContests(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve contests",
		})
		return
	}

	now := time.Now()
	responses := make([]domain.ContestResponse, len(contests))
	for i := range contests {
		responses[i] = contests[i].ToResponse(now)
	}

	c.JSON(http.StatusOK, gin.H{
		"contests": responses,
	})
}

// GetContest returns one contest by ID
// GET /api/contests/:id
func (h *ContestHandler) GetContest(c *gin.Context) {
	contestID, ok := parseContestID(c)
	if !ok {
		return
	}

	contest, err := h.contestService.GetContestByID(c.Request.Context(), contestID)
	if err != nil {
		respondContestError(c, err)
		return
	}

	c.JSON(http.StatusOK, contest.ToResponse(time.Now()))
}

// GetContestBySlug returns one contest by its public slug
// GET /api/contests/slug/:slug
func (h *ContestHandler) GetContestBySlug(c *gin.Context) {
	contest, err := h.contestService.GetContestBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondContestError(c, err)
		return
	}

	c.JSON(http.StatusOK, contest.ToResponse(time.Now()))
}

// AddProblem adds a problem to a contest by link
// POST /api/contests/:id/problems
func (h *ContestHandler) AddProblem(c *gin.Context) {
	contestID, ok := parseContestID(c)
	if !ok {
		return
	}

	var req domain.AddProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	contest, err := h.contestService.AddProblem(c.Request.Context(), contestID, req.ProblemLink)
	if err != nil {
		respondContestError(c, err)
		return
	}

	c.JSON(http.StatusOK, contest.ToResponse(time.Now()))
}

// AddRandomProblem adds a random problem with the requested rating
// POST /api/contests/:id/problems/random
func (h *ContestHandler) AddRandomProblem(c *gin.Context) {
	contestID, ok := parseContestID(c)
	if !ok {
		return
	}

	var req domain.AddRandomProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	contest, err := h.contestService.AddRandomProblem(c.Request.Context(), contestID, req.Rating)
	if err != nil {
		respondContestError(c, err)
		return
	}

	c.JSON(http.StatusOK, contest.ToResponse(time.Now()))
}

// JoinContest registers an individual competitor
// POST /api/contests/:id/join
func (h *ContestHandler) JoinContest(c *gin.Context) {
	contestID, ok := parseContestID(c)
	if !ok {
		return
	}

	var req domain.JoinContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	contest, err := h.contestService.JoinContest(c.Request.Context(), contestID, req.Handle)
	if err != nil {
		respondContestError(c, err)
		return
	}

	c.JSON(http.StatusOK, contest.ToResponse(time.Now()))
}

// JoinTeam registers a team of 1-3 competitors
// POST /api/contests/:id/join-team
func (h *ContestHandler) JoinTeam(c *gin.Context) {
	contestID, ok := parseContestID(c)
	if !ok {
		return
	}

	var req domain.JoinTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	contest, err := h.contestService.JoinTeam(c.Request.Context(), contestID, req.TeamName, req.Members)
	if err != nil {
		respondContestError(c, err)
		return
	}

	c.JSON(http.StatusOK, contest.ToResponse(time.Now()))
}

// parseContestID extracts the :id path parameter as a UUID
func parseContestID(c *gin.Context) (uuid.UUID, bool) {
	contestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid contest ID",
		})
		return uuid.Nil, false
	}
	return contestID, true
}

// respondContestError maps domain errors to HTTP status codes
func respondContestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrContestNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Contest not found",
		})
	case errors.Is(err, domain.ErrContestStarted):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Contest has already started; problems can no longer be added",
		})
	case errors.Is(err, domain.ErrContestProblemLimit):
		c.JSON(http.StatusConflict, gin.H{
			"error": "A contest holds at most 26 problems",
		})
	case errors.Is(err, domain.ErrInvalidProblemLink):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Not a valid contest problem URL",
		})
	case errors.Is(err, domain.ErrNoProblemForRating):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No problem found for given rating",
		})
	case errors.Is(err, domain.ErrInvalidParticipant):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Participant must be an individual handle or a team of 1-3 members",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

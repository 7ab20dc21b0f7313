package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizforge/quizforge-backend/internal/response"
	"github.com/quizforge/quizforge-backend/internal/service"
)

// LeaderboardHandler handles the public leaderboard endpoints.
type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// TopByCredit godoc
// GET /api/v1/leaderboard/credit
func (h *LeaderboardHandler) TopByCredit(c *gin.Context) {
	entries, err := h.leaderboardService.TopByCredit(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"leaderboard": entries})
}

// TopByLearningTime godoc
// GET /api/v1/leaderboard/time
func (h *LeaderboardHandler) TopByLearningTime(c *gin.Context) {
	entries, err := h.leaderboardService.TopByLearningTime(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"leaderboard": entries})
}

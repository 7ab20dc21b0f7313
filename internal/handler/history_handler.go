package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quizforge/quizforge-backend/internal/middleware"
	"github.com/quizforge/quizforge-backend/internal/response"
	"github.com/quizforge/quizforge-backend/internal/service"
)

// HistoryHandler handles exam history and missed-question endpoints.
type HistoryHandler struct {
	historyService *service.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyService *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// ListExamHistory godoc
// GET /api/v1/exams/history?page=&per_page=
func (h *HistoryHandler) ListExamHistory(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	page, perPage := parsePaging(c)
	summaries, pagination, err := h.historyService.ListExamHistory(c.Request.Context(), claims.UserID, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"exams": summaries}, pagination)
}

// GetExamHistoryDetail godoc
// GET /api/v1/exams/history/:exam_id
// Full reconstruction of a past exam. Exams owned by other users are
// indistinguishable from missing ones.
func (h *HistoryHandler) GetExamHistoryDetail(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	detail, err := h.historyService.GetExamDetail(c.Request.Context(), examID, claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": detail})
}

// ListMissedQuestions godoc
// GET /api/v1/questions/missed?page=&per_page=
// Questions the user has ever answered incorrectly.
func (h *HistoryHandler) ListMissedQuestions(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	page, perPage := parsePaging(c)
	questions, pagination, err := h.historyService.ListMissedQuestions(c.Request.Context(), claims.UserID, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"questions": questions}, pagination)
}

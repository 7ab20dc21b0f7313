package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quizforge/quizforge-backend/internal/response"
	"github.com/quizforge/quizforge-backend/internal/service"
)

// ExerciseHandler handles exercise browsing endpoints.
type ExerciseHandler struct {
	exerciseService *service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService *service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// ListExercises godoc
// GET /api/v1/exercises?page=&per_page=
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	page, perPage := parsePaging(c)

	exercises, pagination, err := h.exerciseService.List(c.Request.Context(), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"exercises": exercises}, pagination)
}

// GetExercise godoc
// GET /api/v1/exercises/:id
// Returns the exercise with its question pool, correct answers stripped.
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	detail, err := h.exerciseService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exercise": detail})
}

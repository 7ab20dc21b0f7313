package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quizforge/quizforge-backend/internal/middleware"
	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/quizforge/quizforge-backend/internal/response"
	"github.com/quizforge/quizforge-backend/internal/service"
	"github.com/quizforge/quizforge-backend/internal/validator"
)

// ExamHandler handles exam composition and submission endpoints.
type ExamHandler struct {
	examService *service.ExamService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// ComposeExam godoc
// POST /api/v1/exams
// Starts a new exam from one or more exercises' question pools.
func (h *ExamHandler) ComposeExam(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.ComposeExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.examService.Compose(c.Request.Context(), claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrNoQuestions):
			response.Fail(c, http.StatusBadRequest, response.ErrNoQuestions)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// SubmitExam godoc
// POST /api/v1/exams/:exam_id/submit
// Grades the submitted answers, updates the credit/time ledger, and returns
// the per-question detail.
func (h *ExamHandler) SubmitExam(c *gin.Context) {
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

	var req model.SubmitExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.examService.Submit(c.Request.Context(), examID, claims.UserID, req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, result)
}

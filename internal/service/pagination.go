package service

import "github.com/quizforge/quizforge-backend/internal/response"

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// normalizePaging clamps page and perPage to valid values and returns them
// with the matching LIMIT/OFFSET pair.
func normalizePaging(page, perPage int) (p, pp, limit, offset int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage, perPage, (page - 1) * perPage
}

// buildPagination computes the pagination envelope. TotalPages is never below
// one, even for an empty result set.
func buildPagination(page, perPage, total int) *response.Pagination {
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	return &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

package handlers

import (
	"net/http"
	"strconv"

	"blog-server/shared"
)

const defaultPerPage = 10
const maxPerPage = 100

func parsePagination(r *http.Request) (page, perPage int) {
	page = 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}

	perPage = defaultPerPage
	if raw := r.URL.Query().Get("per_page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			perPage = parsed
		}
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	return page, perPage
}

func pageMeta(page, perPage, total int) shared.PageMeta {
	totalPages := (total + perPage - 1) / perPage
	return shared.PageMeta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blog-server/shared"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.Success)
	return res
}

func TestAuthenticateMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()

	auth := authenticate(rec, req)
	assert.Nil(t, auth)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	res := decodeErrorResponse(t, rec)
	assert.Equal(t, "Authentication required.", res.Message)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()

	auth := authenticate(rec, req)
	assert.Nil(t, auth)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateBadToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()

	auth := authenticate(rec, req)
	assert.Nil(t, auth)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	res := decodeErrorResponse(t, rec)
	assert.Equal(t, "Authentication required.", res.Message)
}

func TestNotFoundHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/no/such/route", nil)
	rec := httptest.NewRecorder()

	NotFoundHandler(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	res := decodeErrorResponse(t, rec)
	assert.Equal(t, "The requested resource was not found.", res.Message)
}

func TestMethodNotAllowedHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodPatch, "/posts", nil)
	rec := httptest.NewRecorder()

	MethodNotAllowedHandler(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	res := decodeErrorResponse(t, rec)
	assert.Equal(t, "HTTP method not allowed.", res.Message)
}

func TestRegisterHandlerInvalidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	RegisterHandler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	res := decodeErrorResponse(t, rec)
	assert.Equal(t, "Bad request.", res.Message)
}

func TestRegisterHandlerValidation(t *testing.T) {
	body := `{
		"username": "short1!",
		"name": "",
		"email": "not-an-email",
		"password": "secret12",
		"password_confirmation": "different"
	}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	RegisterHandler(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	res := decodeErrorResponse(t, rec)
	assert.Equal(t, "The given data is invalid.", res.Message)
	assert.Contains(t, res.Errors, "username")
	assert.Contains(t, res.Errors, "name")
	assert.Contains(t, res.Errors, "email")
	assert.Contains(t, res.Errors, "password")
}

func TestRegisterHandlerPasswordMismatchOnly(t *testing.T) {
	body := `{
		"username": "Abcdef1234!@",
		"name": "Test User",
		"email": "user@example.com",
		"password": "secret12",
		"password_confirmation": "secret13"
	}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	RegisterHandler(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	res := decodeErrorResponse(t, rec)
	assert.Equal(t, []string{"password confirmation does not match"}, res.Errors["password"])
	assert.Len(t, res.Errors, 1)
}

func TestLoginHandlerValidation(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	LoginHandler(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	res := decodeErrorResponse(t, rec)
	assert.Contains(t, res.Errors, "username")
	assert.Contains(t, res.Errors, "password")
}

func TestFetchPostMalformedId(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/posts/not-a-uuid", nil)
	req = mux.SetURLVars(req, map[string]string{"postId": "not-a-uuid"})
	rec := httptest.NewRecorder()

	post := fetchPost(rec, req)
	assert.Nil(t, post)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	res := decodeErrorResponse(t, rec)
	assert.Equal(t, "The requested resource was not found.", res.Message)
}

func TestFetchCommentMalformedId(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/posts/x/comments/not-a-uuid", nil)
	req = mux.SetURLVars(req, map[string]string{"commentId": "not-a-uuid"})
	rec := httptest.NewRecorder()

	comment := fetchComment(rec, req)
	assert.Nil(t, comment)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query   string
		page    int
		perPage int
	}{
		{"", 1, 10},
		{"page=3", 3, 10},
		{"page=3&per_page=25", 3, 25},
		{"page=0&per_page=0", 1, 10},
		{"page=-1&per_page=-5", 1, 10},
		{"page=abc&per_page=xyz", 1, 10},
		{"per_page=500", 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/posts?"+tt.query, nil)
			page, perPage := parsePagination(req)
			assert.Equal(t, tt.page, page)
			assert.Equal(t, tt.perPage, perPage)
		})
	}
}

func TestPageMeta(t *testing.T) {
	meta := pageMeta(2, 10, 35)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 10, meta.PerPage)
	assert.Equal(t, 35, meta.Total)
	assert.Equal(t, 4, meta.TotalPages)

	assert.Equal(t, 0, pageMeta(1, 10, 0).TotalPages)
	assert.Equal(t, 1, pageMeta(1, 10, 10).TotalPages)
}

func TestRateLimitMiddleware(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	limited := RateLimitMiddleware(okHandler)

	// a distinct address keeps this test independent of others sharing the
	// client map
	addr := "203.0.113.77:4321"

	for i := 0; i < rateLimitMaxRequests; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, fmt.Sprintf("request %d should pass", i+1))
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = addr
	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	res := decodeErrorResponse(t, rec)
	assert.Equal(t, "Too many requests. Please try again later.", res.Message)
}

func TestDrainMiddlewareCountsInFlight(t *testing.T) {
	var during int64
	handler := DrainMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = NumActiveRequests()
	}))

	before := NumActiveRequests()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, before+1, during)
	assert.Equal(t, before, NumActiveRequests())
}

func TestWriteSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(rec, http.StatusCreated, shared.LikeCountResponse{PostId: "abc", LikesCount: 2}, "liked")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"success": true,
		"data": {"post_id": "abc", "likes_count": 2},
		"message": "liked"
	}`, rec.Body.String())
}

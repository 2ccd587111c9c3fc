package shared

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateErrorStatuses(t *testing.T) {
	tests := []struct {
		kind    ApiErrorKind
		status  int
		message string
	}{
		{ApiErrorKindValidation, http.StatusUnprocessableEntity, "The given data is invalid."},
		{ApiErrorKindAuthentication, http.StatusUnauthorized, "Authentication required."},
		{ApiErrorKindAuthorization, http.StatusForbidden, "Permission denied."},
		{ApiErrorKindNotFound, http.StatusNotFound, "The requested resource was not found."},
		{ApiErrorKindMethodNotAllowed, http.StatusMethodNotAllowed, "HTTP method not allowed."},
		{ApiErrorKindRateLimit, http.StatusTooManyRequests, "Too many requests. Please try again later."},
		{ApiErrorKindConflict, http.StatusConflict, "Conflict with an existing resource."},
		{ApiErrorKindBadRequest, http.StatusBadRequest, "Bad request."},
		{ApiErrorKindOther, http.StatusInternalServerError, "Internal server error."},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			status, res := TranslateError(&ApiError{Kind: tt.kind, Msg: "internal detail"}, false)
			assert.Equal(t, tt.status, status)
			assert.False(t, res.Success)
			assert.Equal(t, tt.message, res.Message)
			assert.Nil(t, res.Errors)
		})
	}
}

func TestTranslateErrorValidationCarriesFields(t *testing.T) {
	err := &ApiError{
		Kind:   ApiErrorKindValidation,
		Msg:    "invalid input",
		Fields: map[string][]string{"username": {"this field is required"}},
	}

	status, res := TranslateError(err, false)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "The given data is invalid.", res.Message)
	assert.Equal(t, []string{"this field is required"}, res.Errors["username"])
}

func TestTranslateErrorDebugPassthrough(t *testing.T) {
	err := &ApiError{Kind: ApiErrorKindConflict, Msg: "post already liked"}

	_, res := TranslateError(err, true)
	assert.Equal(t, "post already liked", res.Message)

	_, res = TranslateError(err, false)
	assert.Equal(t, "Conflict with an existing resource.", res.Message)

	// classified kinds never leak raw messages, debug or not
	_, res = TranslateError(&ApiError{Kind: ApiErrorKindAuthentication, Msg: "token revoked"}, true)
	assert.Equal(t, "Authentication required.", res.Message)
}

func TestTranslateErrorUnclassified(t *testing.T) {
	status, res := TranslateError(fmt.Errorf("error connecting to db: timeout"), false)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error.", res.Message)

	status, res = TranslateError(fmt.Errorf("error connecting to db: timeout"), true)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "error connecting to db: timeout", res.Message)
}

func TestTranslateErrorExplicitStatus(t *testing.T) {
	err := &ApiError{Kind: ApiErrorKindOther, Status: http.StatusBadGateway, Msg: "upstream failed"}

	status, res := TranslateError(err, false)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "Bad gateway.", res.Message)

	status, res = TranslateError(err, true)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "upstream failed", res.Message)
}

func TestTranslateErrorWrapped(t *testing.T) {
	inner := &ApiError{Kind: ApiErrorKindNotFound, Msg: "post not found"}
	status, res := TranslateError(fmt.Errorf("error loading post: %w", inner), false)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "The requested resource was not found.", res.Message)
}

func TestExpected(t *testing.T) {
	assert.True(t, (&ApiError{Kind: ApiErrorKindValidation}).Expected())
	assert.True(t, (&ApiError{Kind: ApiErrorKindAuthentication}).Expected())
	assert.True(t, (&ApiError{Kind: ApiErrorKindNotFound}).Expected())
	assert.False(t, (&ApiError{Kind: ApiErrorKindAuthorization}).Expected())
	assert.False(t, (&ApiError{Kind: ApiErrorKindOther}).Expected())
}

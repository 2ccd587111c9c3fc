package shared

import (
	"errors"
	"net/http"
)

type ApiErrorKind string

const (
	ApiErrorKindValidation       ApiErrorKind = "validation"
	ApiErrorKindAuthentication   ApiErrorKind = "authentication"
	ApiErrorKindAuthorization    ApiErrorKind = "authorization"
	ApiErrorKindNotFound         ApiErrorKind = "not_found"
	ApiErrorKindMethodNotAllowed ApiErrorKind = "method_not_allowed"
	ApiErrorKindRateLimit        ApiErrorKind = "rate_limit"
	ApiErrorKindConflict         ApiErrorKind = "conflict"
	ApiErrorKindBadRequest       ApiErrorKind = "bad_request"
	ApiErrorKindOther            ApiErrorKind = "other"
)

// ApiError is the typed failure raised by the domain layers. Services never
// format HTTP responses themselves -- TranslateError is the single place that
// maps a failure to a status and body.
type ApiError struct {
	Kind   ApiErrorKind
	Status int // only consulted for ApiErrorKindOther
	Msg    string

	// field -> messages, only set for validation failures
	Fields map[string][]string
}

func (e *ApiError) Error() string {
	return e.Msg
}

// Expected reports whether the failure is an anticipated kind that should be
// excluded from error logging/reporting.
func (e *ApiError) Expected() bool {
	switch e.Kind {
	case ApiErrorKindValidation, ApiErrorKindAuthentication, ApiErrorKindNotFound:
		return true
	}
	return false
}

func (e *ApiError) status() int {
	switch e.Kind {
	case ApiErrorKindValidation:
		return http.StatusUnprocessableEntity
	case ApiErrorKindAuthentication:
		return http.StatusUnauthorized
	case ApiErrorKindAuthorization:
		return http.StatusForbidden
	case ApiErrorKindNotFound:
		return http.StatusNotFound
	case ApiErrorKindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ApiErrorKindRateLimit:
		return http.StatusTooManyRequests
	case ApiErrorKindConflict:
		return http.StatusConflict
	case ApiErrorKindBadRequest:
		return http.StatusBadRequest
	}
	if e.Status != 0 {
		return e.Status
	}
	return http.StatusInternalServerError
}

// TranslateError maps any failure reaching the boundary to an HTTP status and
// the uniform error envelope. It is a pure function of (err, debug): in debug
// deployments raw messages for generic failures are passed through, otherwise
// they are replaced with fixed non-leaking text per status.
func TranslateError(err error, debug bool) (int, ErrorResponse) {
	var apiErr *ApiError
	if !errors.As(err, &apiErr) {
		apiErr = &ApiError{Kind: ApiErrorKindOther, Msg: err.Error()}
	}

	status := apiErr.status()
	res := ErrorResponse{Success: false}

	switch apiErr.Kind {
	case ApiErrorKindValidation:
		res.Message = genericMessage(status)
		res.Errors = apiErr.Fields
	case ApiErrorKindAuthentication, ApiErrorKindAuthorization,
		ApiErrorKindNotFound, ApiErrorKindMethodNotAllowed, ApiErrorKindRateLimit:
		res.Message = genericMessage(status)
	default:
		// conflict, bad request and unclassified failures carry raw domain
		// messages that only debug deployments may expose
		if debug && apiErr.Msg != "" {
			res.Message = apiErr.Msg
		} else {
			res.Message = genericMessage(status)
		}
	}

	return status, res
}

func genericMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Bad request."
	case http.StatusUnauthorized:
		return "Authentication required."
	case http.StatusForbidden:
		return "Permission denied."
	case http.StatusNotFound:
		return "The requested resource was not found."
	case http.StatusMethodNotAllowed:
		return "HTTP method not allowed."
	case http.StatusConflict:
		return "Conflict with an existing resource."
	case http.StatusUnprocessableEntity:
		return "The given data is invalid."
	case http.StatusTooManyRequests:
		return "Too many requests. Please try again later."
	case http.StatusInternalServerError:
		return "Internal server error."
	case http.StatusBadGateway:
		return "Bad gateway."
	case http.StatusServiceUnavailable:
		return "Service unavailable."
	default:
		return "An error occurred while processing the request."
	}
}

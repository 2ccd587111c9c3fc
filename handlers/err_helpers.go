package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"blog-server/shared"

	"github.com/pkg/errors"
)

// writeApiError is the boundary where every failure becomes a JSON response.
// Expected failure kinds (validation, authentication, not-found) are not
// logged to keep noise out of error reporting; everything else is.
func writeApiError(w http.ResponseWriter, err error) {
	status, res := shared.TranslateError(err, isDebug())

	var apiErr *shared.ApiError
	if !errors.As(err, &apiErr) || !apiErr.Expected() {
		log.Printf("API error: %v\n", err)
	}

	bytes, marshalErr := json.Marshal(res)
	if marshalErr != nil {
		log.Printf("Error marshalling error response: %v\n", marshalErr)
		http.Error(w, "Error marshalling error response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

func isDebug() bool {
	return os.Getenv("GOENV") == "development"
}

// NotFoundHandler keeps unmatched routes inside the uniform error envelope.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeApiError(w, &shared.ApiError{
		Kind: shared.ApiErrorKindNotFound,
		Msg:  "route not found",
	})
}

// MethodNotAllowedHandler does the same for matched paths with a wrong method.
func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	writeApiError(w, &shared.ApiError{
		Kind: shared.ApiErrorKindMethodNotAllowed,
		Msg:  "method not allowed",
	})
}

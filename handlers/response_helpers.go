package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"blog-server/shared"
)

// writeSuccess is the only path that produces a success-shaped body. Failures
// go through writeApiError instead.
func writeSuccess(w http.ResponseWriter, statusCode int, data any, message string) {
	bytes, err := json.Marshal(shared.Success(data, message))

	if err != nil {
		log.Printf("Error marshalling response: %v\n", err)
		http.Error(w, "Error marshalling response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(bytes)
}

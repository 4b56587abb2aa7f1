package api

import (
	"encoding/json"
	"net/http"
)

// RespondJSON encodes data before writing any header so an encoding failure
// can still produce a 500.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, `{"code":"INTERNAL","message":"failed to encode response"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(append(body, '\n'))
}

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/SHoar/Wedding-AI/internal/api"
	"github.com/SHoar/Wedding-AI/internal/config"
	"github.com/SHoar/Wedding-AI/pkg/logger_i"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logger_i.NewLogger("Request Handler").Error("Error encoding response", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, detail string) {
	writeJsonResponse(w, httpCode, api.ErrorResponse{Detail: detail})
}

// decodeBody reads at most MaxRequestBytes of JSON into dst. Malformed or oversized bodies get a 422 and false.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, config.MaxRequestBytes)
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			h.logger.Error("Couldn't close the request body", "error", err)
		}
	}(body)

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		log := h.logger.WithTrace(r.Context())
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warn("Request body too large", "limit", tooLarge.Limit)
			WriteErrorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		log.Warn("Malformed request body", "path", r.URL.Path, "error", err)
		WriteErrorResponse(w, http.StatusUnprocessableEntity, "Invalid JSON body: "+err.Error())
		return false
	}
	return true
}

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sukrithpvs/Insight/internal/engine"
	"github.com/sukrithpvs/Insight/internal/watchlist"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError maps domain errors to HTTP statuses. Validation and business
// rejections are 400, missing resources 404, upstream price failures 502,
// everything else 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, engine.ErrInvalidArgument),
		errors.Is(err, engine.ErrInsufficientFunds),
		errors.Is(err, engine.ErrInsufficientPosition),
		errors.Is(err, engine.ErrOrderNotPending),
		errors.Is(err, watchlist.ErrDuplicateTicker),
		errors.Is(err, watchlist.ErrInvalidTicker):
		status = http.StatusBadRequest

	case errors.Is(err, engine.ErrOrderNotFound),
		errors.Is(err, watchlist.ErrItemNotFound):
		status = http.StatusNotFound

	case errors.Is(err, engine.ErrPriceUnavailable):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		s.log.Error().Err(err).Msg("Request failed")
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) badRequest(w http.ResponseWriter, msg string) {
	s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

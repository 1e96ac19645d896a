package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/competeinator/internal/codec"
	"github.com/mcoot/competeinator/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeInvalidHistory  = "INVALID_HISTORY"
	CodePlayerNotFound  = "PLAYER_NOT_FOUND"
	CodeMatchNotFound   = "MATCH_NOT_FOUND"
	CodeNoPlayers       = "NO_PLAYERS"
	CodeAlreadyDecided  = "ALREADY_DECIDED"
	CodeNotParticipant  = "NOT_PARTICIPANT"
	CodeEmptyPlayerName = "EMPTY_PLAYER_NAME"
	CodeMatchChanged    = "MATCH_CHANGED"
	CodeHistoryTooLarge = "HISTORY_TOO_LARGE"
	CodeInternalError   = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// A truncated upload surfaces as a LoadError too, so check the size first
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return &httpError{http.StatusRequestEntityTooLarge, APIError{CodeHistoryTooLarge, mbe.Error()}}
	}

	var le *codec.LoadError
	if errors.As(err, &le) {
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidHistory, le.Error()}}
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}
	case errors.Is(err, model.ErrEmptyPlayerName):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyPlayerName, "Player name must not be empty"}}
	case errors.Is(err, model.ErrNoPlayers):
		return &httpError{http.StatusConflict, APIError{CodeNoPlayers, "Add a player before creating a match"}}
	case errors.Is(err, model.ErrAlreadyDecided):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyDecided, "Match already has a winner"}}
	case errors.Is(err, model.ErrMatchChanged):
		return &httpError{http.StatusConflict, APIError{CodeMatchChanged, "Match was changed concurrently, retry"}}
	case errors.Is(err, model.ErrNotParticipant):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeNotParticipant, "Player is not part of this match"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/competeinator/internal/api/handler"
	"github.com/mcoot/competeinator/internal/api/middleware"
	"github.com/mcoot/competeinator/internal/services/tournament"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger     *slog.Logger
	Tournament *tournament.Controller

	// MaxImportBytes caps the history file accepted by the import route.
	// Zero means DefaultMaxImportBytes.
	MaxImportBytes int64
}

// DefaultMaxImportBytes is the import size limit when none is configured
const DefaultMaxImportBytes = 10 << 20

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	if cfg.MaxImportBytes <= 0 {
		cfg.MaxImportBytes = DefaultMaxImportBytes
	}

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.Tournament)
	matchHandler := handler.NewMatchHandler(cfg.Tournament)
	archiveHandler := handler.NewArchiveHandler(cfg.Tournament, cfg.MaxImportBytes)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.RequestID())
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Player routes
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/players", playerHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}", playerHandler.Delete).Methods(http.MethodDelete)

	// Match routes
	api.HandleFunc("/matches", matchHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/matches", matchHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/matches/{id}", matchHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/matches/{id}/components", matchHandler.AddComponent).Methods(http.MethodPost)
	api.HandleFunc("/matches/{id}/winner", matchHandler.DeclareWinner).Methods(http.MethodPost)
	api.HandleFunc("/standings", matchHandler.Standings).Methods(http.MethodGet)

	// History file
	api.HandleFunc("/export", archiveHandler.Export).Methods(http.MethodGet)
	api.HandleFunc("/import", archiveHandler.Import).Methods(http.MethodPost)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

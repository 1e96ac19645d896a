package handler

import (
	"io"
	"net/http"

	"github.com/mcoot/competeinator/internal/api/response"
	"github.com/mcoot/competeinator/internal/codec"
	"github.com/mcoot/competeinator/internal/services/tournament"
)

// ArchiveHandler serves the history file format over HTTP
type ArchiveHandler struct {
	tournament     *tournament.Controller
	maxImportBytes int64
}

// NewArchiveHandler creates a new archive handler that refuses history
// uploads larger than maxImportBytes
func NewArchiveHandler(tournament *tournament.Controller, maxImportBytes int64) *ArchiveHandler {
	return &ArchiveHandler{
		tournament:     tournament,
		maxImportBytes: maxImportBytes,
	}
}

// Export handles GET /api/v1/export
func (h *ArchiveHandler) Export(w http.ResponseWriter, r *http.Request) {
	records, err := h.tournament.Records(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	_ = response.JSONAttachment(w, codec.DefaultOutputPath, func(out io.Writer) error {
		return codec.Encode(out, records)
	})
}

// Import handles POST /api/v1/import
// The body is a history file; parse failures leave the session unchanged.
func (h *ArchiveHandler) Import(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, h.maxImportBytes)
	result, err := h.tournament.Import(r.Context(), body)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ImportResponse{
		Matches:        result.Matches,
		PlayersCreated: result.PlayersCreated,
	})
}

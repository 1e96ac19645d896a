package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/competeinator/internal/api/apierr"
	"github.com/mcoot/competeinator/internal/ident"
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// pathID parses the named route variable as an ID of kind K
func pathID[K any](r *http.Request, name string) (ident.ID[K], error) {
	id, err := ident.Parse[K](mux.Vars(r)[name])
	if err != nil {
		return id, NewInvalidRequestError("invalid " + name)
	}
	return id, nil
}

package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rolevend/rolevend/pkg/vending"
)

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithVendingError maps the vending error taxonomy onto HTTP status
// codes: rejected requests are 422, missing sessions 404, refused
// transitions 409, and downstream failures 502 or 503 by retryability.
func respondWithVendingError(w http.ResponseWriter, err error) {
	var (
		validationErr *vending.ValidationError
		notFoundErr   *vending.NotFoundError
		conflictErr   *vending.ConflictError
		adapterErr    *vending.AdapterError
	)
	switch {
	case errors.As(err, &validationErr):
		respondWithJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":  validationErr.Detail,
			"reason": string(validationErr.Reason),
		})
	case errors.As(err, &notFoundErr):
		respondWithError(w, http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &conflictErr):
		respondWithError(w, http.StatusConflict, conflictErr.Error())
	case errors.As(err, &adapterErr) && adapterErr.Retryable:
		respondWithError(w, http.StatusServiceUnavailable, adapterErr.Error())
	default:
		respondWithError(w, http.StatusBadGateway, err.Error())
	}
}

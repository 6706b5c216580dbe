package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"bizdash/internal/core"
	"bizdash/internal/log"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service errors onto status codes: 422 for validation,
// 404 for a missing record, 500 for the rest.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := core.AsValidation(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: ve.Error(), Fields: ve.Fields()})
		return
	}
	if errors.Is(err, core.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
		return
	}
	log.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed",
		log.FieldPath, r.URL.Path, log.FieldError, err.Error())
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

// decode reads a JSON body into v. Any failure, including an oversized
// body, is reported as 400 and decode returns false.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: "request body too large"})
		case errors.Is(err, io.EOF):
			badRequest(w, "request body is empty")
		default:
			badRequest(w, fmt.Sprintf("malformed JSON: %v", err))
		}
		return false
	}
	return true
}

// updated answers a PATCH or PUT: the record when one matched, 204 when the
// id was unknown.
func updated[T any](w http.ResponseWriter, r *http.Request, rec T, ok bool, err error) {
	switch {
	case err != nil:
		writeError(w, r, err)
	case !ok:
		w.WriteHeader(http.StatusNoContent)
	default:
		writeJSON(w, http.StatusOK, rec)
	}
}

func created[T any](w http.ResponseWriter, r *http.Request, rec T, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func found[T any](w http.ResponseWriter, r *http.Request, rec T, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func attachment(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/subtrainer/subtrainer/internal/quiz"
	"github.com/subtrainer/subtrainer/internal/session"
	"github.com/subtrainer/subtrainer/internal/storage"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, quiz.ErrUnknownMode),
		errors.Is(err, quiz.ErrUnknownOption),
		errors.Is(err, quiz.ErrUnknownIngredient),
		errors.Is(err, quiz.ErrUnknownCategory),
		errors.Is(err, quiz.ErrWrongMode):
		return http.StatusBadRequest
	case errors.Is(err, quiz.ErrAlreadyRevealed),
		errors.Is(err, quiz.ErrNotRevealed),
		errors.Is(err, quiz.ErrNoAnswer),
		errors.Is(err, quiz.ErrNoQuestion),
		errors.Is(err, quiz.ErrEmptyFilter):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func statusForBlob(err error) int {
	if errors.Is(err, storage.ErrBadKey) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeErr(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

// decodeOptional is decode for endpoints where an empty body means defaults.
func decodeOptional(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad json")
		return false
	}
	return true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return false
	}
	return true
}

// urlParam returns the chi URL parameter, unescaped when chi routed on the
// raw path.
func urlParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v
	}
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}

package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/apperror"
	"github.com/fintrack/backend/internal/logger"
	"github.com/fintrack/backend/pkg/datetime"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// ErrorResponse represents a JSON error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondError writes a JSON error response with the given status code and message.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondErr maps err onto a status code and message. Server errors are
// logged with the request context and their details are not sent.
func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	status := apperror.GetStatusCode(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		logger.FromContext(r.Context()).Error("Request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		respondError(w, status, "an internal error occurred")
		return
	}

	respondJSON(w, status, ErrorResponse{
		Error: apperror.GetMessage(err),
		Field: apperror.GetField(err),
	})
}

// decodeJSON reads a JSON request body into v. Unknown fields are ignored.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperror.ValidationError(typeErr.Field, "invalid value for "+typeErr.Field)
	}
	return apperror.BadRequest("invalid request body")
}

// pathID parses a UUID route parameter.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperror.BadRequest("invalid " + name)
	}
	return id, nil
}

// queryInt parses an optional integer query parameter; absent means 0.
func queryInt(r *http.Request, key string) (int, error) {
	s := strings.TrimSpace(r.URL.Query().Get(key))
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperror.ValidationError(key, key+" must be a whole number")
	}
	return n, nil
}

func queryDecimal(r *http.Request, key string) (decimal.Decimal, error) {
	s := strings.TrimSpace(r.URL.Query().Get(key))
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, apperror.ValidationError(key, key+" must be a number")
	}
	return d, nil
}

func queryDate(r *http.Request, key string) (datetime.Date, error) {
	s := strings.TrimSpace(r.URL.Query().Get(key))
	if s == "" {
		return datetime.Date{}, nil
	}
	d, err := datetime.ParseDate(s)
	if err != nil {
		return datetime.Date{}, apperror.ValidationError(key, key+" must be a date in YYYY-MM-DD format")
	}
	return d, nil
}

func queryBool(r *http.Request, key string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return b
}

// splitAndTrim splits a string by separator and trims whitespace from each part.
func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

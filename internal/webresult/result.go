// Package webresult converts the outcome of an action into the
// `{"success": bool, "error": string}` envelope returned to clients.
package webresult

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/andrebq/bolulista/internal/logutil"
	"github.com/andrebq/bolulista/internal/validate"
)

type (
	Result struct {
		Success bool   `json:"success"`
		Error   string `json:"error,omitempty"`
	}

	// Public is implemented by errors that are safe to show to end users
	Public interface {
		error
		UserMessage() string
		HTTPStatus() int
	}

	retryable interface {
		RetryAfter() time.Duration
	}
)

// Success is embedded by handlers in their own response types
var Success = Result{Success: true}

func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	buf, err := json.Marshal(body)
	if err != nil {
		http.Error(w, `{"success":false,"error":"unable to encode response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(buf)))
	w.WriteHeader(status)
	w.Write(buf)
}

func OK(w http.ResponseWriter, body interface{}) {
	WriteJSON(w, http.StatusOK, body)
}

// Fail writes err to the client. Errors that are not Public are logged and
// replaced by fallback, internal details never reach the client.
func Fail(ctx context.Context, w http.ResponseWriter, err error, fallback string) {
	log := logutil.GetOrDefault(ctx)
	var pub Public
	if !errors.As(err, &pub) {
		log.Error().Err(err).Str("result", fallback).Msg("Action failed")
		WriteJSON(w, http.StatusInternalServerError, Result{Error: fallback})
		return
	}
	log.Debug().Err(err).Int("status", pub.HTTPStatus()).Msg("Action rejected")
	var retry retryable
	if errors.As(err, &retry) && retry.RetryAfter() > 0 {
		w.Header().Set("Retry-After", strconv.FormatInt(int64(math.Ceil(retry.RetryAfter().Seconds())), 10))
	}
	WriteJSON(w, pub.HTTPStatus(), Result{Error: pub.UserMessage()})
}

const (
	msgRequestTooLarge = "request too large"
	msgInvalidRequest  = "invalid request"
)

// ParseForm reads at most limit bytes of url encoded or multipart form
// data into r.Form, oversized or malformed bodies are reported as
// validate.InvalidField.
func ParseForm(w http.ResponseWriter, r *http.Request, limit int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(limit)
	} else {
		err = r.ParseForm()
	}
	if err == nil {
		return nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return validate.InvalidField{Field: "body", Message: msgRequestTooLarge}
	}
	return validate.InvalidField{Field: "body", Message: msgInvalidRequest}
}

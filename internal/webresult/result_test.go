package webresult

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/andrebq/bolulista/internal/validate"
	"github.com/stretchr/testify/require"
)

type (
	publicErr struct{}
	slowDown  struct{}
)

func (publicErr) Error() string       { return "internal description" }
func (publicErr) UserMessage() string { return "not found" }
func (publicErr) HTTPStatus() int     { return http.StatusNotFound }

func (slowDown) Error() string             { return "throttled" }
func (slowDown) UserMessage() string       { return "slow down" }
func (slowDown) HTTPStatus() int           { return http.StatusTooManyRequests }
func (slowDown) RetryAfter() time.Duration { return time.Minute }

func TestFailWithPublicError(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(context.Background(), rec, fmt.Errorf("wrapped, cause %w", publicErr{}), "generic")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"success":false,"error":"not found"}`, rec.Body.String())
}

func TestFailHidesUnknownErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(context.Background(), rec, errors.New("disk is on fire"), "unable to create item")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"success":false,"error":"unable to create item"}`, rec.Body.String())
}

func TestFailRetryAfter(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(context.Background(), rec, slowDown{}, "generic")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, struct {
		Result
		Name string `json:"name"`
	}{Result: Success, Name: "Milk"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true,"name":"Milk"}`, rec.Body.String())
	require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
}

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest("POST", "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestParseForm(t *testing.T) {
	req := formRequest(url.Values{"email": {"a@x.com"}})
	require.NoError(t, ParseForm(httptest.NewRecorder(), req, 1<<10))
	require.Equal(t, "a@x.com", req.FormValue("email"))

	req = formRequest(url.Values{"email": {"a@x.com"}, "password": {strings.Repeat("x", 2<<10)}})
	err := ParseForm(httptest.NewRecorder(), req, 1<<10)
	var invalid validate.InvalidField
	require.True(t, errors.As(err, &invalid), "unexpected error %v", err)
	require.Equal(t, "request too large", invalid.UserMessage())

	req = formRequest(nil)
	req.Body = http.NoBody
	req.URL.RawQuery = "bad=%zz"
	err = ParseForm(httptest.NewRecorder(), req, 1<<10)
	require.True(t, errors.As(err, &invalid), "unexpected error %v", err)
	require.Equal(t, "invalid request", invalid.UserMessage())
}

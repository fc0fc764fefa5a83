// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

func newRecorderPair(requestID string) (*httptest.ResponseRecorder, *http.Request) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/test", nil)
	if requestID != "" {
		req = req.WithContext(logging.ContextWithRequestID(req.Context(), requestID))
	}
	return httptest.NewRecorder(), req
}

func TestResponseWriter_Success(t *testing.T) {
	t.Parallel()
	rec, req := newRecorderPair("req-1")

	NewResponseWriter(rec, req).Success(map[string]int{"n": 1})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if !env.Success || env.Error != nil {
		t.Errorf("envelope = %+v", env)
	}
	if env.Meta == nil || env.Meta.RequestID != "req-1" || env.Meta.Timestamp.IsZero() {
		t.Errorf("meta = %+v", env.Meta)
	}
}

func TestResponseWriter_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		write  func(rw *ResponseWriter)
		status int
		code   string
	}{
		{"bad request", func(rw *ResponseWriter) { rw.BadRequest("x") }, http.StatusBadRequest, ErrCodeBadRequest},
		{"not found", func(rw *ResponseWriter) { rw.NotFound("x") }, http.StatusNotFound, ErrCodeNotFound},
		{"too many", func(rw *ResponseWriter) { rw.TooManyRequests("x") }, http.StatusTooManyRequests, ErrCodeTooManyRequests},
		{"internal", func(rw *ResponseWriter) { rw.InternalError("x", errors.New("boom")) }, http.StatusInternalServerError, ErrCodeInternalError},
		{"unavailable", func(rw *ResponseWriter) { rw.ServiceUnavailable("x") }, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"timeout", func(rw *ResponseWriter) { rw.GatewayTimeout("x") }, http.StatusGatewayTimeout, ErrCodeTimeout},
		{"external", func(rw *ResponseWriter) { rw.ExternalServiceError("tmdb", errors.New("502")) }, http.StatusBadGateway, ErrCodeExternalServiceFail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, req := newRecorderPair("req-err")
			tt.write(NewResponseWriter(rec, req))

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			env := decodeEnvelope(t, rec)
			if env.Success {
				t.Error("success = true")
			}
			if env.Error == nil || env.Error.Code != tt.code || env.Error.RequestID != "req-err" {
				t.Errorf("error = %+v", env.Error)
			}
		})
	}
}

func TestInternalErrorDoesNotLeakCause(t *testing.T) {
	t.Parallel()
	rec, req := newRecorderPair("")
	NewResponseWriter(rec, req).InternalError("Failed", errors.New("secret path /var/lib/x"))
	env := decodeEnvelope(t, rec)
	if env.Error.Message != "Failed" {
		t.Errorf("message = %q", env.Error.Message)
	}
}

func TestWriteEngineError(t *testing.T) {
	t.Parallel()
	h := &Handler{}

	tests := []struct {
		err    error
		status int
	}{
		{recommend.ErrNotTrained, http.StatusServiceUnavailable},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{context.Canceled, 499},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec, req := newRecorderPair("")
		h.writeEngineError(NewResponseWriter(rec, req), tt.err)
		if rec.Code != tt.status {
			t.Errorf("writeEngineError(%v) status = %d, want %d", tt.err, rec.Code, tt.status)
		}
	}
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()
	if got := sanitizeLogValue("a\nb\x7f"); got != `a\x0ab\x7f` {
		t.Errorf("sanitizeLogValue() = %q", got)
	}
}

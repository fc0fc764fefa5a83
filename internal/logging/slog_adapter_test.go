// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newBufferedHandler() (*SlogHandler, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewSlogHandlerWithLogger(zerolog.New(&buf).Level(zerolog.TraceLevel)), &buf
}

func TestSlogHandler_Enabled(t *testing.T) {
	tests := []struct {
		name         string
		zerologLevel zerolog.Level
		slogLevel    slog.Level
		want         bool
	}{
		{"debug allowed at debug", zerolog.DebugLevel, slog.LevelDebug, true},
		{"debug blocked at info", zerolog.InfoLevel, slog.LevelDebug, false},
		{"warn allowed at info", zerolog.InfoLevel, slog.LevelWarn, true},
		{"info blocked at error", zerolog.ErrorLevel, slog.LevelInfo, false},
		{"error allowed at error", zerolog.ErrorLevel, slog.LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewSlogHandlerWithLogger(zerolog.New(nil).Level(tt.zerologLevel))
			if got := handler.Enabled(context.Background(), tt.slogLevel); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSlogHandler_Handle(t *testing.T) {
	tests := []struct {
		level     slog.Level
		wantLevel string
	}{
		{slog.LevelDebug, `"level":"debug"`},
		{slog.LevelInfo, `"level":"info"`},
		{slog.LevelWarn, `"level":"warn"`},
		{slog.LevelError, `"level":"error"`},
		{slog.Level(100), `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			handler, buf := newBufferedHandler()
			record := slog.NewRecord(time.Now(), tt.level, "service restarted", 0)
			record.AddAttrs(slog.String("service", "http-server"), slog.Int("attempt", 2))

			if err := handler.Handle(context.Background(), record); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}

			output := buf.String()
			for _, want := range []string{tt.wantLevel, "service restarted", `"service":"http-server"`, `"attempt":2`} {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %s: %s", want, output)
				}
			}
		})
	}
}

func TestSlogHandler_WithAttrs(t *testing.T) {
	handler, buf := newBufferedHandler()

	child := handler.WithAttrs([]slog.Attr{slog.String("layer", "api")}).(*SlogHandler)
	grandchild := child.WithAttrs([]slog.Attr{slog.Bool("restart", true)}).(*SlogHandler)

	if len(handler.attrs) != 0 || len(child.attrs) != 1 || len(grandchild.attrs) != 2 {
		t.Fatalf("attrs lengths = %d/%d/%d, want 0/1/2", len(handler.attrs), len(child.attrs), len(grandchild.attrs))
	}

	slog.New(grandchild).Info("tick")
	output := buf.String()
	if !strings.Contains(output, `"layer":"api"`) || !strings.Contains(output, `"restart":true`) {
		t.Errorf("pre-configured attributes missing: %s", output)
	}
}

func TestSlogHandler_WithGroup(t *testing.T) {
	handler, buf := newBufferedHandler()

	if handler.WithGroup("") != slog.Handler(handler) {
		t.Error("WithGroup(\"\") should return the same handler")
	}

	slog.New(handler.WithGroup("supervisor").WithGroup("event")).Info("x", "name", "poster-gc")
	if !strings.Contains(buf.String(), `"supervisor.event.name":"poster-gc"`) {
		t.Errorf("group prefix wrong: %s", buf.String())
	}
}

func TestAddAttr_Kinds(t *testing.T) {
	handler, buf := newBufferedHandler()

	slog.New(handler).Info("kinds",
		slog.Int64("i", -3),
		slog.Uint64("u", 7),
		slog.Float64("f", 0.5),
		slog.Duration("d", time.Second),
		slog.Any("a", []int{1, 2}),
		slog.Group("g", slog.String("inner", "v")),
	)

	output := buf.String()
	for _, want := range []string{`"i":-3`, `"u":7`, `"f":0.5`, `"d":1000`, `"a":[1,2]`, `"g.inner":"v"`} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %s: %s", want, output)
		}
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 8, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := slogToZerologLevel(tt.in); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewSlogLogger(t *testing.T) {
	if NewSlogLogger() == nil {
		t.Fatal("NewSlogLogger() = nil")
	}
}

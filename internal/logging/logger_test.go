package logging

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for input, want := range cases {
		if got := ParseLevel(input); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestGormLoggerTrace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), 10*time.Millisecond)

	query := func() (string, int64) { return "SELECT 1", 1 }

	gl.Trace(context.Background(), time.Now(), query, nil)
	gl.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
	gl.Trace(context.Background(), time.Now(), query, errors.New("boom"))
	gl.Trace(context.Background(), time.Now().Add(-time.Second), query, nil)

	entries := logs.AllUntimed()
	if len(entries) != 4 {
		t.Fatalf("expected 4 log entries, got %d", len(entries))
	}
	if entries[0].Level != zapcore.DebugLevel || entries[1].Level != zapcore.DebugLevel {
		t.Fatalf("expected normal and not-found queries at debug, got %s/%s", entries[0].Level, entries[1].Level)
	}
	if entries[2].Message != "query error" || entries[2].Level != zapcore.WarnLevel {
		t.Fatalf("unexpected error entry: %+v", entries[2])
	}
	if entries[3].Message != "slow query" {
		t.Fatalf("expected slow query entry, got %q", entries[3].Message)
	}
}

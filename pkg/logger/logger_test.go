package logger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func resetLogger(t *testing.T) {
	t.Helper()
	log = nil
	once = sync.Once{}
	t.Cleanup(func() {
		log = nil
		once = sync.Once{}
	})
}

func TestInitAndContextLogging(t *testing.T) {
	resetLogger(t)
	Init("development")
	require.NotNil(t, GetLogger())

	ctx := context.WithValue(context.Background(), "request_id", "req-1")
	require.NotNil(t, WithContext(ctx))

	Info(ctx, "info")
	Debug(ctx, "debug")
	Warn(ctx, "warn")
	Error(ctx, "error")
	LogRequest(ctx, "GET", "/health", 200, 10*time.Millisecond, "127.0.0.1")
}

func TestGetLogger_NopBeforeInit(t *testing.T) {
	resetLogger(t)
	require.NotNil(t, GetLogger())
	assert.NotPanics(t, func() {
		Info(context.Background(), "dropped")
		SetLevel(zapcore.ErrorLevel)
	})
}

func TestWithContextNil(t *testing.T) {
	resetLogger(t)
	Init("development")
	require.NotNil(t, WithContext(nil))
}

func TestWithContext_AddsRequestID(t *testing.T) {
	resetLogger(t)
	core, logs := observer.New(zapcore.DebugLevel)
	log = zap.New(core)

	Info(ContextWithRequestID(context.Background(), "typed-req-id"), "typed")
	Info(context.WithValue(context.Background(), "request_id", "gin-req-id"), "plain")
	Info(context.Background(), "none")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "typed-req-id", entries[0].ContextMap()["request_id"])
	assert.Equal(t, "gin-req-id", entries[1].ContextMap()["request_id"])
	assert.NotContains(t, entries[2].ContextMap(), "request_id")
}

func TestInit_ProductionLevelCanChange(t *testing.T) {
	resetLogger(t)
	Init("production")
	require.NotNil(t, GetLogger())
	assert.False(t, GetLogger().Core().Enabled(zapcore.DebugLevel))

	SetLevel(zapcore.DebugLevel)
	assert.True(t, GetLogger().Core().Enabled(zapcore.DebugLevel))
}

func TestInit_PanicWhenLoggerBuildFails(t *testing.T) {
	resetLogger(t)
	origBuild := buildLogger
	t.Cleanup(func() { buildLogger = origBuild })

	buildLogger = func(zap.Config) (*zap.Logger, error) {
		return nil, errors.New("build failed")
	}

	assert.Panics(t, func() { Init("production") })
}

package logger

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestNew(t *testing.T) {
	logger, err := New("debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = New("loud")
	assert.Error(t, err)
}

func TestFromContext(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	scoped := zap.New(core)

	assert.Same(t, scoped, FromContext(WithContext(context.Background(), scoped)))
	assert.NotNil(t, FromContext(context.Background()))
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name          string
		requestID     string
		status        int
		expectedLevel zapcore.Level
	}{
		{name: "ok", status: http.StatusOK, expectedLevel: zapcore.InfoLevel},
		{name: "clienterror", requestID: "req-1", status: http.StatusNotFound, expectedLevel: zapcore.WarnLevel},
		{name: "servererror", status: http.StatusInternalServerError, expectedLevel: zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)

			engine := gin.New()
			engine.Use(GinMiddleware(zap.New(core)))
			engine.GET("/things/:id", func(c *gin.Context) {
				assert.NotNil(t, FromContext(c.Request.Context()))
				if tt.status >= http.StatusBadRequest {
					_ = c.Error(errors.New("boom"))
				}
				c.Status(tt.status)
			})

			req := httptest.NewRequest(http.MethodGet, "/things/1", nil)
			if tt.requestID != "" {
				req.Header.Set(RequestIDHeader, tt.requestID)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			requestID := w.Header().Get(RequestIDHeader)
			assert.NotEmpty(t, requestID)
			if tt.requestID != "" {
				assert.Equal(t, tt.requestID, requestID)
			}

			entries := logs.FilterMessage("http_request").All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.expectedLevel, entries[0].Level)

			fields := entries[0].ContextMap()
			assert.Equal(t, "/things/:id", fields["route"])
			assert.Equal(t, int64(tt.status), fields["status"])
			assert.Equal(t, requestID, fields["request_id"])
		})
	}
}

func TestGormLoggerTrace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := WithContext(context.Background(), zap.New(core))
	query := func() (string, int64) { return "SELECT * FROM members", 3 }

	logger := NewGormLogger(100 * time.Millisecond)

	logger.Trace(ctx, time.Now(), query, nil)
	assert.Equal(t, 0, logs.Len())

	logger.Trace(ctx, time.Now(), query, gormlogger.ErrRecordNotFound)
	assert.Equal(t, 0, logs.Len())

	logger.Trace(ctx, time.Now(), query, errors.New("syntax error"))
	assert.Equal(t, 1, logs.FilterMessage("gorm.query").Len())

	logger.Trace(ctx, time.Now().Add(-time.Second), query, nil)
	assert.Equal(t, 1, logs.FilterMessage("gorm.slow_query").Len())

	logger.LogMode(gormlogger.Silent).Trace(ctx, time.Now(), query, errors.New("ignored"))
	assert.Equal(t, 2, logs.Len())
}

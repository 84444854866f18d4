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

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("nonsense"))
}

func TestNew(t *testing.T) {
	l := New(Config{Level: "debug", Format: "json", Output: "stderr"})
	require.NotNil(t, l)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l = ForEnvironment("production", "warn")
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestL_EnrichesFromContext(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx := WithContext(context.Background(), zap.New(core))
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithUserID(ctx, "user-9")

	L(ctx).Info("hello")

	require.Equal(t, 1, recorded.Len())
	fields := recorded.All()[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "user-9", fields["user_id"])

	// no logger in context is a no-op
	assert.NotPanics(t, func() { L(context.Background()).Info("dropped") })
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.InfoLevel)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(WithRequestID(c.Request.Context(), "req-42"))
		c.Next()
	})
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/ok", func(c *gin.Context) {
		L(c.Request.Context()).Info("inside handler")
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	router.GET("/missing", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	handlerLogs := recorded.FilterMessage("inside handler").All()
	require.Len(t, handlerLogs, 1)
	assert.Equal(t, "req-42", handlerLogs[0].ContextMap()["request_id"])

	reqLogs := recorded.FilterMessage("HTTP Request").All()
	require.Len(t, reqLogs, 1)
	assert.Equal(t, zapcore.InfoLevel, reqLogs[0].Level)
	assert.Equal(t, int64(200), reqLogs[0].ContextMap()["status"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	reqLogs = recorded.FilterMessage("HTTP Request").All()
	require.Len(t, reqLogs, 2)
	assert.Equal(t, zapcore.WarnLevel, reqLogs[1].Level)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Internal server error","error":{"code":"INTERNAL_ERROR","message":"Internal server error"}}`, w.Body.String())
	assert.Equal(t, 1, recorded.FilterMessage("Panic recovered").Len())
}

func TestGormLogger_Trace(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Warn, 100*time.Millisecond)
	sqlFn := func() (string, int64) { return "SELECT 1", 1 }

	gl.Trace(context.Background(), time.Now(), sqlFn, nil)
	assert.Equal(t, 0, recorded.Len(), "fast queries are not logged at warn")

	gl.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn, nil)
	assert.Equal(t, 1, recorded.FilterMessage("SLOW SQL >= 100ms").Len())

	gl.Trace(context.Background(), time.Now(), sqlFn, gormlogger.ErrRecordNotFound)
	assert.Equal(t, 0, recorded.FilterMessage("SQL Error").Len())

	gl.Trace(WithRequestID(context.Background(), "r1"), time.Now(), sqlFn, errors.New("syntax"))
	errs := recorded.FilterMessage("SQL Error").All()
	require.Len(t, errs, 1)
	assert.Equal(t, "r1", errs[0].ContextMap()["request_id"])

	silent := gl.LogMode(gormlogger.Silent)
	silent.Trace(context.Background(), time.Now(), sqlFn, errors.New("ignored"))
	assert.Equal(t, 1, recorded.FilterMessage("SQL Error").Len())
}

func TestGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, GormLevel("debug"))
	assert.Equal(t, gormlogger.Warn, GormLevel("info"))
	assert.Equal(t, gormlogger.Silent, GormLevel("silent"))
}

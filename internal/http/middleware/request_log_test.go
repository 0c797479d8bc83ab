package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(zerolog.New(buf)))
	r.GET("/fleet/vehicles/:plate", func(c *gin.Context) {
		c.String(http.StatusNotFound, RequestID(c))
	})
	return r
}

func TestRequestLogger_GeneratesID(t *testing.T) {
	var buf bytes.Buffer
	w := httptest.NewRecorder()
	newEngine(&buf).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fleet/vehicles/ABC1234", nil))

	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, w.Body.String())

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "/fleet/vehicles/:plate", line["path"])
	assert.Equal(t, float64(http.StatusNotFound), line["status"])
	assert.Equal(t, id, line["request_id"])
}

func TestRequestLogger_KeepsCallerID(t *testing.T) {
	var buf bytes.Buffer
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/fleet/vehicles/ABC1234", nil)
	req.Header.Set(RequestIDHeader, id)
	w := httptest.NewRecorder()

	newEngine(&buf).ServeHTTP(w, req)

	assert.Equal(t, id, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/fleet/vehicles/ABC1234", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	newEngine(&buf).ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
}

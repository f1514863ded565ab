package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nimeshabuddhika/terabox-resolver/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEngine(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(zap.NewNop()), CORS(), TraceID(), Metrics())
	r.GET("/x", handler)
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCORS_HeadersWithoutOrigin(t *testing.T) {
	r := newEngine(func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, corsAllowMethods, rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, corsAllowHeaders, rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestTraceID_GeneratedWhenAbsent(t *testing.T) {
	var seen string
	r := newEngine(func(c *gin.Context) { seen = c.GetString(pkg.TraceId) })

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(pkg.HeaderTraceId))
}

func TestTraceID_ReusesInbound(t *testing.T) {
	var seen string
	r := newEngine(func(c *gin.Context) { seen = c.GetString(pkg.TraceId) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(pkg.HeaderTraceId, "abc-123")
	rec := serve(r, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(pkg.HeaderTraceId))
}

func TestTraceID_ReplacesUnsafeInbound(t *testing.T) {
	tests := map[string]string{
		"too long":       strings.Repeat("a", maxTraceIDLen+1),
		"embedded space": "abc def",
		"control char":   "abc\tdef",
	}
	for name, inbound := range tests {
		t.Run(name, func(t *testing.T) {
			var seen string
			r := newEngine(func(c *gin.Context) { seen = c.GetString(pkg.TraceId) })

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.Header.Set(pkg.HeaderTraceId, inbound)
			rec := serve(r, req)

			assert.NotEqual(t, inbound, seen)
			_, err := uuid.Parse(seen)
			assert.NoError(t, err)
			assert.Equal(t, seen, rec.Header().Get(pkg.HeaderTraceId))
		})
	}
}

func TestRecovery_RendersEnvelope(t *testing.T) {
	r := newEngine(func(c *gin.Context) { panic("kaboom") })

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Internal server error","message":"kaboom"}`, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

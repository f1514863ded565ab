package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nimeshabuddhika/terabox-resolver/pkg"
	"github.com/nimeshabuddhika/terabox-resolver/pkg/utils"
)

const maxTraceIDLen = 128

// TraceID reuses the caller's X-Trace-Id when it is safe to echo and log,
// otherwise mints a UUID. The id is stored under pkg.TraceId and returned in the response header.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.Request.Header.Get(pkg.HeaderTraceId)
		if !acceptableTraceID(traceID) {
			traceID = uuid.NewString()
		}
		c.Set(pkg.TraceId, traceID)
		c.Writer.Header().Set(pkg.HeaderTraceId, traceID)
		c.Next()
	}
}

// acceptableTraceID allows short, printable ASCII ids only.
func acceptableTraceID(id string) bool {
	if utils.IsEmpty(id) || len(id) > maxTraceIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

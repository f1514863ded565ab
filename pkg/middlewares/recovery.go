package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/nimeshabuddhika/terabox-resolver/pkg"
	"go.uber.org/zap"
)

// Recovery converts a panic anywhere down the chain into the failure envelope.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		err, ok := recovered.(error)
		if !ok {
			err = fmt.Errorf("%v", recovered)
		}
		resp := pkg.ToErrorResponse(logger, c.GetString(pkg.TraceId), err)
		c.AbortWithStatusJSON(resp.Status, resp)
	})
}

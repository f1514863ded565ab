package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type BaseHandler struct {
	logger         *zap.Logger
	metricsEnabled bool
}

func NewBaseHandler(logger *zap.Logger, metricsEnabled bool) *BaseHandler {
	return &BaseHandler{logger: logger, metricsEnabled: metricsEnabled}
}

func (b *BaseHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", b.GetHealth)
	if b.metricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

func (b *BaseHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

package app

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	middleware "github.com/nimeshabuddhika/terabox-resolver/pkg/middlewares"
	"github.com/nimeshabuddhika/terabox-resolver/pkg/utils"
	"github.com/nimeshabuddhika/terabox-resolver/services/resolver-api/configs"
	"github.com/nimeshabuddhika/terabox-resolver/services/resolver-api/internal/handlers"
	"github.com/nimeshabuddhika/terabox-resolver/services/resolver-api/internal/services"
	"go.uber.org/zap"
)

// NewRouter builds the Gin engine serving the resolver on /api/terabox plus /health and /metrics.
func NewRouter(logger *zap.Logger, cfg *configs.Config, resolver services.LinkResolver) *gin.Engine {
	baseHandler := handlers.NewBaseHandler(logger, cfg.MetricsEnabled)
	teraboxHandler := handlers.NewTeraboxHandler(logger, cfg, resolver)

	r := gin.New()
	// /api/terabox/ must not bounce to an HTML 301; it falls through to NoRoute instead.
	r.RedirectTrailingSlash = false
	r.Use(middleware.Recovery(logger))
	r.NoRoute(middleware.CORS(), middleware.TraceID(), middleware.Metrics(), teraboxHandler.NoRoute)

	api := r.Group("/api")
	api.Use(middleware.CORS())
	api.Use(middleware.TraceID())
	api.Use(middleware.Metrics())

	teraboxHandler.RegisterRoutes(api)
	baseHandler.RegisterRoutes(r)
	return r
}

// NewHandler loads configuration from the environment and wires the upstream client and router.
func NewHandler(logger *zap.Logger) (*gin.Engine, *configs.Config, error) {
	cfg, err := configs.Load(logger)
	if err != nil {
		return nil, nil, err
	}

	client, err := NewUpstreamClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	resolver := services.NewTeraboxService(logger, cfg, client)
	return NewRouter(logger, cfg, resolver), cfg, nil
}

// NewUpstreamClient builds the outbound client, routed through UPSTREAM_PROXY when configured.
func NewUpstreamClient(cfg *configs.Config) (*http.Client, error) {
	opts := []utils.ClientOption{utils.WithClientTimeout(cfg.UpstreamTimeout)}
	if cfg.UpstreamProxy != "" {
		proxyURL, err := url.Parse(cfg.UpstreamProxy)
		if err != nil {
			return nil, fmt.Errorf("invalid upstream proxy: %w", err)
		}
		opts = append(opts, utils.WithProxy(http.ProxyURL(proxyURL)))
	}
	return utils.NewHTTPClient(opts...), nil
}

// NewApp returns an *http.Server for long-running deployments.
func NewApp(logger *zap.Logger) (*http.Server, error) {
	router, cfg, err := NewHandler(logger)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}, nil
}

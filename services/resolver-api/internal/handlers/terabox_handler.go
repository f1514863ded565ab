package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nimeshabuddhika/terabox-resolver/pkg"
	"github.com/nimeshabuddhika/terabox-resolver/pkg/common"
	"github.com/nimeshabuddhika/terabox-resolver/services/resolver-api/configs"
	"github.com/nimeshabuddhika/terabox-resolver/services/resolver-api/internal/observability"
	"github.com/nimeshabuddhika/terabox-resolver/services/resolver-api/internal/services"
	"github.com/nimeshabuddhika/terabox-resolver/services/resolver-api/internal/views"
	"go.uber.org/zap"
)

const (
	resolvePath = "/terabox"

	// ResolveRoute is the full path of the resolver under the /api group.
	ResolveRoute = "/api" + resolvePath
)

type TeraboxHandler struct {
	logger   *zap.Logger
	cnf      *configs.Config
	resolver services.LinkResolver
	now      func() time.Time
}

func NewTeraboxHandler(logger *zap.Logger, cnf *configs.Config, resolver services.LinkResolver) *TeraboxHandler {
	return &TeraboxHandler{logger: logger, cnf: cnf, resolver: resolver, now: time.Now}
}

// RegisterRoutes binds every method so that method policy is decided by Resolve, not the router.
func (h *TeraboxHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.Any(resolvePath, h.Resolve)
}

// NoRoute catches what the router could not match. Methods gin does not register
// (PROPFIND, PURGE, ...) land here for the resolver path and get the same 405 as POST.
func (h *TeraboxHandler) NoRoute(c *gin.Context) {
	traceID := c.GetString(pkg.TraceId)
	if c.Request.URL.Path == ResolveRoute {
		h.fail(c, traceID, pkg.NewAppError(pkg.ErrInvalidMethodCode, "", nil))
		return
	}
	h.fail(c, traceID, pkg.NewAppError(pkg.ErrNotFoundCode, "", nil))
}

// Resolve handles GET /api/terabox?url=... and its CORS preflight.
func (h *TeraboxHandler) Resolve(c *gin.Context) {
	traceID := c.GetString(pkg.TraceId)

	switch c.Request.Method {
	case http.MethodOptions:
		c.Status(http.StatusOK)
		return
	case http.MethodGet:
	default:
		h.fail(c, traceID, pkg.NewAppError(pkg.ErrInvalidMethodCode, "", nil))
		return
	}

	var req views.ResolveRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.fail(c, traceID, pkg.NewAppError(pkg.ErrInvalidURLFormatCode, "", err))
		return
	}
	if req.URL == "" {
		h.fail(c, traceID, pkg.NewAppError(pkg.ErrMissingURLCode, "", nil))
		return
	}
	if !services.IsValidShareURL(req.URL) {
		h.fail(c, traceID, pkg.NewAppError(pkg.ErrInvalidURLFormatCode, "", nil))
		return
	}

	data, err := h.resolver.Resolve(c.Request.Context(), traceID, req.URL)
	if err != nil {
		h.fail(c, traceID, err)
		return
	}

	observability.Resolutions.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, common.NewAPIResponse(data, h.cnf.APIVersion, h.now()))
}

// fail renders err as the failure envelope, adding the usage hints that go with validation errors.
func (h *TeraboxHandler) fail(c *gin.Context, traceID string, err error) {
	resp := pkg.ToErrorResponse(h.logger, traceID, err)
	switch resp.Code {
	case pkg.ErrMissingURLCode.Code:
		resp.Example = h.cnf.PublicBaseURL + ResolveRoute + "?url=" + services.ExampleShareURL
	case pkg.ErrInvalidURLFormatCode.Code:
		resp.ValidFormats = services.ValidShareURLFormats
	}
	observability.Resolutions.WithLabelValues(resp.Code).Inc()
	c.JSON(resp.Status, resp)
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nimeshabuddhika/terabox-resolver/pkg"
	"github.com/nimeshabuddhika/terabox-resolver/services/resolver-api/configs"
	"github.com/nimeshabuddhika/terabox-resolver/services/resolver-api/internal/observability"
	"github.com/nimeshabuddhika/terabox-resolver/services/resolver-api/internal/views"
	"go.uber.org/zap"
)

const (
	eventPath = "/api/event"
	ajaxPath  = "/wp-admin/admin-ajax.php"

	fetchAction = "terabox_fetch"
	pageTitle   = "TeraBox Downloader - Download TeraBox Video + Files (2025)"

	// upper bound on the event body scanned for a nonce
	maxEventBody = 1 << 20
)

// LinkResolver turns a share URL into the upstream's download payload.
type LinkResolver interface {
	Resolve(ctx context.Context, traceID string, shareURL string) (json.RawMessage, error)
}

type TeraboxServiceImpl struct {
	logger *zap.Logger
	cnf    *configs.Config
	client *http.Client
}

func NewTeraboxService(logger *zap.Logger, cnf *configs.Config, client *http.Client) LinkResolver {
	return &TeraboxServiceImpl{
		logger: logger,
		cnf:    cnf,
		client: client,
	}
}

// Resolve runs the two-call handshake once: fetch a nonce, then spend it on the fetch action.
// Any failure ends the attempt; nothing is retried.
func (s *TeraboxServiceImpl) Resolve(ctx context.Context, traceID string, shareURL string) (json.RawMessage, error) {
	logger := pkg.WithTrace(s.logger, traceID).With(zap.String(pkg.ShareURL, shareURL))

	nonce, err := s.fetchNonce(ctx, logger)
	if err != nil {
		return nil, err
	}

	data, err := s.fetchLink(ctx, logger, shareURL, nonce)
	if err != nil {
		return nil, err
	}
	logger.Info("terabox data fetched")
	return data, nil
}

func (s *TeraboxServiceImpl) fetchNonce(ctx context.Context, logger *zap.Logger) (string, error) {
	base := strings.TrimRight(s.cnf.UpstreamBaseURL, "/")
	event := views.PageviewEvent{
		Name:         "pageview",
		URL:          base + "/",
		Languages:    []string{"en-GB", "en-US", "en"},
		SiteKey:      s.cnf.UpstreamSiteKey,
		Referrer:     "https://www.google.com/",
		ScreenWidth:  1920,
		ScreenHeight: 1080,
		ScaleRatio:   1,
		Title:        pageTitle,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+eventPath, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	s.setBrowserHeaders(req, base)
	req.Header.Set("Content-Type", "text/plain")

	start := time.Now()
	resp, err := s.client.Do(req)
	observability.UpstreamLatency.WithLabelValues(observability.StepNonce).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.UpstreamCalls.WithLabelValues(observability.StepNonce, "transport_error").Inc()
		return "", pkg.NewAppError(pkg.ErrUpstreamNetworkCode, fmt.Sprintf("nonce request failed: %v", err), err)
	}
	defer resp.Body.Close()
	logger.Info("nonce request completed", zap.Int("status", resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxEventBody))
	if err != nil {
		observability.UpstreamCalls.WithLabelValues(observability.StepNonce, "transport_error").Inc()
		return "", pkg.NewAppError(pkg.ErrUpstreamNetworkCode, fmt.Sprintf("nonce response unreadable: %v", err), err)
	}

	// Status is not checked; a nonce in any body is accepted.
	nonce, ok := ExtractNonce(string(body))
	if !ok {
		observability.UpstreamCalls.WithLabelValues(observability.StepNonce, "nonce_missing").Inc()
		return "", pkg.NewAppError(pkg.ErrNonceNotFoundCode, "", pkg.ErrNonceNotFound)
	}
	observability.UpstreamCalls.WithLabelValues(observability.StepNonce, "ok").Inc()
	logger.Debug("nonce obtained", zap.String("nonce", nonce))
	return nonce, nil
}

func (s *TeraboxServiceImpl) fetchLink(ctx context.Context, logger *zap.Logger, shareURL, nonce string) (json.RawMessage, error) {
	base := strings.TrimRight(s.cnf.UpstreamBaseURL, "/")
	form := "action=" + fetchAction + "&url=" + encodeURIComponent(shareURL) + "&nonce=" + nonce

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+ajaxPath, strings.NewReader(form))
	if err != nil {
		return nil, err
	}
	s.setBrowserHeaders(req, base)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	start := time.Now()
	resp, err := s.client.Do(req)
	observability.UpstreamLatency.WithLabelValues(observability.StepResolve).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.UpstreamCalls.WithLabelValues(observability.StepResolve, "transport_error").Inc()
		return nil, pkg.NewAppError(pkg.ErrUpstreamNetworkCode, fmt.Sprintf("resolve request failed: %v", err), err)
	}
	defer resp.Body.Close()
	logger.Info("resolve request completed", zap.Int("status", resp.StatusCode))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		observability.UpstreamCalls.WithLabelValues(observability.StepResolve, "http_error").Inc()
		return nil, pkg.NewAppError(pkg.ErrUpstreamHTTPCode,
			fmt.Sprintf("HTTP error! status: %d", resp.StatusCode),
			fmt.Errorf("%w: %d", pkg.ErrUpstreamStatus, resp.StatusCode))
	}

	var out views.ResolveResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		observability.UpstreamCalls.WithLabelValues(observability.StepResolve, "parse_error").Inc()
		return nil, pkg.NewAppError(pkg.ErrUpstreamParseCode, fmt.Sprintf("invalid upstream response: %v", err), err)
	}
	observability.UpstreamCalls.WithLabelValues(observability.StepResolve, "ok").Inc()
	return out.Data, nil
}

// setBrowserHeaders makes the call look like it came from the upstream's own page.
func (s *TeraboxServiceImpl) setBrowserHeaders(req *http.Request, base string) {
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Origin", base)
	req.Header.Set("Referer", base+"/")
	req.Header.Set("User-Agent", s.cnf.UserAgent)
}

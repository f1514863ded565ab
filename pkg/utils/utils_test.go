package utils

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sampleConfig struct {
	Port    string `mapstructure:"PORT" validate:"required"`
	BaseURL string `mapstructure:"BASE_URL" validate:"required,url"`
	Workers int    `mapstructure:"WORKERS" validate:"min=1"`
}

func TestFormatConfigErrors_NamesEnvKeys(t *testing.T) {
	cfg := sampleConfig{BaseURL: "nope"}
	err := validator.New().Struct(&cfg)
	require.Error(t, err)

	formatted := FormatConfigErrors(zap.NewNop(), err, cfg)

	require.Error(t, formatted)
	assert.Contains(t, formatted.Error(), "APP_PORT failed 'required'")
	assert.Contains(t, formatted.Error(), "APP_BASE_URL failed 'url'")
	assert.Contains(t, formatted.Error(), "APP_WORKERS failed 'min=1'")
}

func TestFormatConfigErrors_PassesThroughOtherErrors(t *testing.T) {
	err := assert.AnError
	assert.Same(t, err, FormatConfigErrors(zap.NewNop(), err, &sampleConfig{}))
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "APP_UPSTREAM_TIMEOUT", EnvKey("UPSTREAM_TIMEOUT"))
}

func TestNewHTTPClient_SanitizesBadOptions(t *testing.T) {
	client := NewHTTPClient(WithClientTimeout(-1), WithMaxConnsPerHost(0))

	assert.Equal(t, defaultClientTimeout, client.Timeout)
	tr, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, defaultMaxConnsPerHost, tr.MaxConnsPerHost)
	assert.NotNil(t, tr.Proxy)
}

func TestNewHTTPClient_CustomTransport(t *testing.T) {
	rt := http.DefaultTransport
	client := NewHTTPClient(WithTransport(rt), WithClientTimeout(3*time.Second))

	assert.Same(t, rt, client.Transport)
	assert.Equal(t, 3*time.Second, client.Timeout)
}

func TestNewHTTPClient_ZeroTimeoutDisablesDeadline(t *testing.T) {
	client := NewHTTPClient(WithClientTimeout(0))

	assert.Zero(t, client.Timeout)
	tr, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Zero(t, tr.ResponseHeaderTimeout)
}

func TestNewHTTPClient_DefaultsKeepDeadlines(t *testing.T) {
	client := NewHTTPClient()

	assert.Equal(t, defaultClientTimeout, client.Timeout)
	tr, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, defaultResponseHeaderTimeout, tr.ResponseHeaderTimeout)
}

package configs

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoad_Defaults(t *testing.T) {
	gin.SetMode(gin.TestMode)
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load(zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DefaultUpstreamBaseURL, cfg.UpstreamBaseURL)
	assert.Equal(t, 25*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, DefaultSiteKey, cfg.UpstreamSiteKey)
	assert.Equal(t, DefaultAPIVersion, cfg.APIVersion)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	gin.SetMode(gin.TestMode)
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_UPSTREAM_BASE_URL", "http://127.0.0.1:4000")
	t.Setenv("APP_UPSTREAM_TIMEOUT", "3s")
	t.Setenv("APP_METRICS_ENABLED", "false")

	cfg, err := Load(zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://127.0.0.1:4000", cfg.UpstreamBaseURL)
	assert.Equal(t, 3*time.Second, cfg.UpstreamTimeout)
	assert.False(t, cfg.MetricsEnabled)
}

func TestLoad_InvalidUpstreamURL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("APP_UPSTREAM_BASE_URL", "not a url")

	_, err := Load(zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_UPSTREAM_BASE_URL")
	assert.Contains(t, err.Error(), "'url'")
}

func TestLoad_ZeroTimeoutAllowed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("APP_UPSTREAM_TIMEOUT", "0s")

	cfg, err := Load(zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, cfg.UpstreamTimeout)
}

func TestLoad_NegativeTimeoutRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("APP_UPSTREAM_TIMEOUT", "-1s")

	_, err := Load(zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_UPSTREAM_TIMEOUT")
}

package configs

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/nimeshabuddhika/terabox-resolver/pkg"
	"github.com/nimeshabuddhika/terabox-resolver/pkg/utils"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	DefaultUpstreamBaseURL = "https://teradownloadr.com"
	DefaultSiteKey         = "EdmacAlcfkfDwEmll2DHPQ"
	DefaultUserAgent       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultAPIVersion      = "1.0"
	DefaultPublicBaseURL   = "https://your-domain.vercel.app"
)

// Config holds application configuration for resolver-api.
type Config struct {
	Port            string        `mapstructure:"PORT" validate:"required"`
	UpstreamBaseURL string        `mapstructure:"UPSTREAM_BASE_URL" validate:"required,url"`
	UpstreamTimeout time.Duration `mapstructure:"UPSTREAM_TIMEOUT" validate:"gte=0"` // 0 disables the per-call deadline
	UpstreamProxy   string        `mapstructure:"UPSTREAM_PROXY" validate:"omitempty,url"`
	UpstreamSiteKey string        `mapstructure:"UPSTREAM_SITE_KEY" validate:"required"`
	UserAgent       string        `mapstructure:"USER_AGENT" validate:"required"`
	APIVersion      string        `mapstructure:"API_VERSION" validate:"required"`
	PublicBaseURL   string        `mapstructure:"PUBLIC_BASE_URL" validate:"required,url"`
	MetricsEnabled  bool          `mapstructure:"METRICS_ENABLED"`
}

func Load(logger *zap.Logger) (*Config, error) {
	viper.SetEnvPrefix(pkg.EnvPrefix)
	viper.AutomaticEnv()

	// Default values
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("UPSTREAM_BASE_URL", DefaultUpstreamBaseURL)
	viper.SetDefault("UPSTREAM_TIMEOUT", "25s")
	viper.SetDefault("UPSTREAM_SITE_KEY", DefaultSiteKey)
	viper.SetDefault("USER_AGENT", DefaultUserAgent)
	viper.SetDefault("API_VERSION", DefaultAPIVersion)
	viper.SetDefault("PUBLIC_BASE_URL", DefaultPublicBaseURL)
	viper.SetDefault("METRICS_ENABLED", true)

	// Optional: Read from config.yaml if exists
	if gin.ReleaseMode == gin.Mode() {
		viper.SetConfigName("config.prod")
	} else if gin.TestMode == gin.Mode() {
		logger.Warn("running in test mode")
		viper.SetConfigName("config.test")
	} else {
		logger.Warn("running in development mode")
		viper.SetConfigName("config.dev")
	}
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./services/resolver-api/configs")
	_ = viper.ReadInConfig() // Ignore if no file

	var cfg Config
	if err := utils.ParseStructEnv(&cfg); err != nil {
		return nil, err
	}

	// Validate after unmarshal
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, utils.FormatConfigErrors(logger, err, cfg)
	}
	return &cfg, nil
}

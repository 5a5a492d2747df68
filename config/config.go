package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/viper"

	"github.com/psat-tools/psat-server/errortypes"
)

// Configuration specifies the static application config.
type Configuration struct {
	Host           string  `mapstructure:"host"`
	Port           int     `mapstructure:"port"`
	AdminPort      int     `mapstructure:"admin_port"`
	EnableGzip     bool    `mapstructure:"enable_gzip"`
	MaxRequestSize int64   `mapstructure:"max_request_size"`
	StatusResponse string  `mapstructure:"status_response"`
	CORS           CORS    `mapstructure:"cors"`
	Reports        Reports `mapstructure:"reports"`
	Metrics        Metrics `mapstructure:"metrics"`
}

// CORS controls which origins may call the analysis endpoints. The DevTools extension
// calls from a chrome-extension:// origin.
type CORS struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AllowsAll reports whether every origin is accepted.
func (c CORS) AllowsAll() bool {
	for _, origin := range c.AllowedOrigins {
		if origin == "*" {
			return true
		}
	}
	return len(c.AllowedOrigins) == 0
}

// Reports configures the in-memory store of generated reports.
type Reports struct {
	TTLSeconds             int `mapstructure:"ttl_seconds"`
	CleanupIntervalSeconds int `mapstructure:"cleanup_interval_seconds"`
}

// TTL returns how long a generated report can be fetched.
func (r Reports) TTL() time.Duration {
	return time.Duration(r.TTLSeconds) * time.Second
}

// CleanupInterval returns how often expired reports are purged.
func (r Reports) CleanupInterval() time.Duration {
	return time.Duration(r.CleanupIntervalSeconds) * time.Second
}

func (r Reports) validate(errs []error) []error {
	if r.TTLSeconds <= 0 {
		errs = append(errs, fmt.Errorf("reports.ttl_seconds must be positive. Got %d", r.TTLSeconds))
	}
	if r.CleanupIntervalSeconds <= 0 {
		errs = append(errs, fmt.Errorf("reports.cleanup_interval_seconds must be positive. Got %d", r.CleanupIntervalSeconds))
	}
	return errs
}

type Metrics struct {
	Prometheus PrometheusMetrics `mapstructure:"prometheus"`
	GoMetrics  GoMetrics         `mapstructure:"go_metrics"`
}

// GoMetrics enables the in-process go-metrics registry, served as JSON by the admin server.
type GoMetrics struct {
	Enabled bool `mapstructure:"enabled"`
}

// PrometheusMetrics configures the Prometheus listener. A zero Port disables it.
type PrometheusMetrics struct {
	Port             int    `mapstructure:"port"`
	Namespace        string `mapstructure:"namespace"`
	Subsystem        string `mapstructure:"subsystem"`
	TimeoutMillisRaw int    `mapstructure:"timeout_ms"`
}

func (cfg *PrometheusMetrics) validate(errs []error) []error {
	if cfg.Port > 0 && cfg.TimeoutMillisRaw <= 0 {
		errs = append(errs, fmt.Errorf("metrics.prometheus.timeout_ms must be positive if metrics.prometheus.port is defined. Got timeout=%d and port=%d", cfg.TimeoutMillisRaw, cfg.Port))
	}
	return errs
}

func (cfg *PrometheusMetrics) Timeout() time.Duration {
	return time.Duration(cfg.TimeoutMillisRaw) * time.Millisecond
}

func (cfg *Configuration) validate() []error {
	var errs []error
	if cfg.Port <= 0 || cfg.Port > 65535 {
		errs = append(errs, fmt.Errorf("port must be between 1 and 65535. Got %d", cfg.Port))
	}
	if cfg.AdminPort <= 0 || cfg.AdminPort > 65535 {
		errs = append(errs, fmt.Errorf("admin_port must be between 1 and 65535. Got %d", cfg.AdminPort))
	}
	if cfg.AdminPort == cfg.Port {
		errs = append(errs, fmt.Errorf("admin_port and port must differ. Both are %d", cfg.Port))
	}
	if cfg.MaxRequestSize <= 0 {
		errs = append(errs, fmt.Errorf("max_request_size must be positive. Got %d", cfg.MaxRequestSize))
	}
	errs = cfg.Reports.validate(errs)
	errs = cfg.Metrics.Prometheus.validate(errs)
	return errs
}

// New uses viper to get our server configurations.
func New(v *viper.Viper) (*Configuration, error) {
	var c Configuration
	if err := v.Unmarshal(&c); err != nil {
		return nil, &errortypes.InvalidConfig{Message: fmt.Sprintf("viper failed to unmarshal app config: %v", err)}
	}

	if errs := c.validate(); len(errs) > 0 {
		return &c, errortypes.NewAggregateErrors("validation errors", errs)
	}

	return &c, nil
}

// SetupViper registers defaults and the config file search path. An empty filename skips
// reading a config file.
func SetupViper(v *viper.Viper, filename string) {
	if filename != "" {
		v.SetConfigName(filename)
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/config")
	}

	v.SetDefault("host", "")
	v.SetDefault("port", 8000)
	v.SetDefault("admin_port", 6060)
	v.SetDefault("enable_gzip", false)
	v.SetDefault("max_request_size", 4*1024*1024)
	v.SetDefault("status_response", "")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("reports.ttl_seconds", 3600)
	v.SetDefault("reports.cleanup_interval_seconds", 600)
	v.SetDefault("metrics.prometheus.port", 0)
	v.SetDefault("metrics.prometheus.namespace", "psat")
	v.SetDefault("metrics.prometheus.subsystem", "")
	v.SetDefault("metrics.prometheus.timeout_ms", 10000)
	v.SetDefault("metrics.go_metrics.enabled", false)

	// Set environment variable support:
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("PSAT")
	v.AutomaticEnv()

	if filename != "" {
		if err := v.ReadInConfig(); err != nil {
			glog.Warningf("Config file %s not read, using defaults and environment: %v", filename, err)
		}
	}
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Log       LogConfig
	Site      SiteConfig
	API       APIConfig
	Session   SessionConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Telemetry TelemetryConfig
	RateLimit RateLimitConfig
	Admin     AdminConfig
	Display   DisplayConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	MaxBodySize    int64
	TrustedProxies []string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// SiteConfig holds the public facing links and the REST backend location.
type SiteConfig struct {
	AppName        string
	APIBaseURL     string
	BackendURL     string
	FrontendURL    string
	Email          string
	WhatsAppNumber string
	WhatsAppURL    string
	GitHubURL      string
	LinkedInURL    string
	InstagramURL   string
	TwitterURL     string
	MapsURL        string
	Debug          bool
}

// APIConfig controls the REST client used to reach the backend
type APIConfig struct {
	Timeout          time.Duration
	RetryCount       int
	RetryWaitTime    time.Duration
	RetryMaxWaitTime time.Duration
}

// SessionConfig holds admin session settings
type SessionConfig struct {
	Store        string // memory, redis
	CookieName   string
	CookiePath   string
	MaxAge       time.Duration
	SecureCookie bool
	SameSite     string // strict, lax, none
	ValidateTTL  time.Duration
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host      string
	Port      int
	Password  string
	DB        int
	KeyPrefix string
}

// StorageConfig holds optional object storage settings
type StorageConfig struct {
	S3 S3Config
}

// S3Config holds S3-compatible storage settings for the upload mirror
type S3Config struct {
	Enabled         bool
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool
	CollectorEndpoint string
	SamplingRatio     float64
	ServiceName       string
	Insecure          bool
}

// RateLimitConfig holds per-client limits for the login and contact forms
type RateLimitConfig struct {
	Enabled         bool
	LoginRequests   int
	LoginWindow     time.Duration
	ContactRequests int
	ContactWindow   time.Duration
}

// AdminConfig holds admin UI behaviour
type AdminConfig struct {
	RedirectDelay time.Duration
}

// DisplayConfig holds public page presentation settings
type DisplayConfig struct {
	AchievementsPerSlide int
	ProjectsPerSlide     int
	AutoplayInterval     time.Duration
	StreamHeartbeat      time.Duration
	MaxStreams           int
}

// Load loads configuration. Priority (highest to lowest):
// 1. Environment variables with PORTFOLIO_ prefix (e.g., PORTFOLIO_SITE_API_BASE_URL)
// 2. .env file in the working directory
// 3. config.toml
// 4. Built-in defaults
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("PORTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := fromViper(v)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes: v.GetInt("http.max_header_bytes"),
			MaxBodySize:    v.GetInt64("http.max_body_size"),
			TrustedProxies: v.GetStringSlice("http.trusted_proxies"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Site: SiteConfig{
			AppName:        v.GetString("site.app_name"),
			APIBaseURL:     v.GetString("site.api_base_url"),
			BackendURL:     v.GetString("site.backend_url"),
			FrontendURL:    v.GetString("site.frontend_url"),
			Email:          v.GetString("site.email"),
			WhatsAppNumber: v.GetString("site.whatsapp_number"),
			WhatsAppURL:    v.GetString("site.whatsapp_url"),
			GitHubURL:      v.GetString("site.github_url"),
			LinkedInURL:    v.GetString("site.linkedin_url"),
			InstagramURL:   v.GetString("site.instagram_url"),
			TwitterURL:     v.GetString("site.twitter_url"),
			MapsURL:        v.GetString("site.maps_url"),
			Debug:          v.GetBool("site.debug"),
		},
		API: APIConfig{
			Timeout:          v.GetDuration("api.timeout"),
			RetryCount:       v.GetInt("api.retry_count"),
			RetryWaitTime:    v.GetDuration("api.retry_wait_time"),
			RetryMaxWaitTime: v.GetDuration("api.retry_max_wait_time"),
		},
		Session: SessionConfig{
			Store:        v.GetString("session.store"),
			CookieName:   v.GetString("session.cookie_name"),
			CookiePath:   v.GetString("session.cookie_path"),
			MaxAge:       v.GetDuration("session.max_age"),
			SecureCookie: v.GetBool("session.secure_cookie"),
			SameSite:     v.GetString("session.same_site"),
			ValidateTTL:  v.GetDuration("session.validate_ttl"),
		},
		Redis: RedisConfig{
			Host:      v.GetString("redis.host"),
			Port:      v.GetInt("redis.port"),
			Password:  v.GetString("redis.password"),
			DB:        v.GetInt("redis.db"),
			KeyPrefix: v.GetString("redis.key_prefix"),
		},
		Storage: StorageConfig{
			S3: S3Config{
				Enabled:         v.GetBool("storage.s3.enabled"),
				Endpoint:        v.GetString("storage.s3.endpoint"),
				Region:          v.GetString("storage.s3.region"),
				Bucket:          v.GetString("storage.s3.bucket"),
				AccessKeyID:     v.GetString("storage.s3.access_key_id"),
				SecretAccessKey: v.GetString("storage.s3.secret_access_key"),
				UsePathStyle:    v.GetBool("storage.s3.use_path_style"),
			},
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
		},
		RateLimit: RateLimitConfig{
			Enabled:         v.GetBool("ratelimit.enabled"),
			LoginRequests:   v.GetInt("ratelimit.login_requests"),
			LoginWindow:     v.GetDuration("ratelimit.login_window"),
			ContactRequests: v.GetInt("ratelimit.contact_requests"),
			ContactWindow:   v.GetDuration("ratelimit.contact_window"),
		},
		Admin: AdminConfig{
			RedirectDelay: v.GetDuration("admin.redirect_delay"),
		},
		Display: DisplayConfig{
			AchievementsPerSlide: v.GetInt("display.achievements_per_slide"),
			ProjectsPerSlide:     v.GetInt("display.projects_per_slide"),
			AutoplayInterval:     v.GetDuration("display.autoplay_interval"),
			StreamHeartbeat:      v.GetDuration("display.stream_heartbeat"),
			MaxStreams:           v.GetInt("display.max_streams"),
		},
	}
}

// Defaults returns the built-in configuration without reading files or
// the environment
func Defaults() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "portfolio-web"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "5173"
	}

	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 30 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 6 << 20 // room for a 5MB upload plus form overhead
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}

	s := &cfg.Site
	if s.AppName == "" {
		s.AppName = "Portfolio Website"
	}
	if s.APIBaseURL == "" {
		s.APIBaseURL = "http://localhost:8080/api"
	}
	s.APIBaseURL = strings.TrimRight(s.APIBaseURL, "/")
	if s.BackendURL == "" {
		s.BackendURL = "http://localhost:8080"
	}
	s.BackendURL = strings.TrimRight(s.BackendURL, "/")
	if s.FrontendURL == "" {
		s.FrontendURL = "http://localhost:5173"
	}
	if s.Email == "" {
		s.Email = "muhammaddarmawanfadillah@gmail.com"
	}
	if s.WhatsAppNumber == "" {
		s.WhatsAppNumber = "6285600121760"
	}
	if s.WhatsAppURL == "" {
		s.WhatsAppURL = "https://wa.me/" + s.WhatsAppNumber
	}
	if s.GitHubURL == "" {
		s.GitHubURL = "https://github.com/darmawanfadilah"
	}
	if s.LinkedInURL == "" {
		s.LinkedInURL = "https://linkedin.com/in/darmawanfadilah"
	}
	if s.InstagramURL == "" {
		s.InstagramURL = "https://instagram.com/darmawanfadilah"
	}
	if s.TwitterURL == "" {
		s.TwitterURL = "https://twitter.com/darmawanfadilah"
	}
	if s.MapsURL == "" {
		s.MapsURL = "https://maps.google.com/?q=Banjarnegara,Central+Java,Indonesia"
	}

	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 10 * time.Second
	}
	if cfg.API.RetryWaitTime == 0 {
		cfg.API.RetryWaitTime = 200 * time.Millisecond
	}
	if cfg.API.RetryMaxWaitTime == 0 {
		cfg.API.RetryMaxWaitTime = 2 * time.Second
	}

	if cfg.Session.Store == "" {
		cfg.Session.Store = "memory"
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "portfolio_session"
	}
	if cfg.Session.CookiePath == "" {
		cfg.Session.CookiePath = "/"
	}
	if cfg.Session.MaxAge == 0 {
		cfg.Session.MaxAge = 24 * time.Hour
	}
	if cfg.Session.SameSite == "" {
		cfg.Session.SameSite = "lax"
	}
	if cfg.Session.ValidateTTL == 0 {
		cfg.Session.ValidateTTL = time.Minute
	}

	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "portfolio:session:"
	}

	if cfg.Storage.S3.Region == "" {
		cfg.Storage.S3.Region = "us-east-1"
	}

	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}

	if cfg.RateLimit.LoginRequests == 0 {
		cfg.RateLimit.LoginRequests = 5
	}
	if cfg.RateLimit.LoginWindow == 0 {
		cfg.RateLimit.LoginWindow = time.Minute
	}
	if cfg.RateLimit.ContactRequests == 0 {
		cfg.RateLimit.ContactRequests = 3
	}
	if cfg.RateLimit.ContactWindow == 0 {
		cfg.RateLimit.ContactWindow = 10 * time.Minute
	}

	if cfg.Admin.RedirectDelay == 0 {
		cfg.Admin.RedirectDelay = 1500 * time.Millisecond
	}

	if cfg.Display.AchievementsPerSlide == 0 {
		cfg.Display.AchievementsPerSlide = 3
	}
	if cfg.Display.ProjectsPerSlide == 0 {
		cfg.Display.ProjectsPerSlide = 3
	}
	if cfg.Display.AutoplayInterval == 0 {
		cfg.Display.AutoplayInterval = 5 * time.Second
	}
	if cfg.Display.StreamHeartbeat == 0 {
		cfg.Display.StreamHeartbeat = 30 * time.Second
	}
	if cfg.Display.MaxStreams == 0 {
		cfg.Display.MaxStreams = 1000
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	for name, raw := range map[string]string{
		"site.api_base_url": c.Site.APIBaseURL,
		"site.backend_url":  c.Site.BackendURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}

	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout cannot be negative")
	}
	if c.API.RetryCount < 0 {
		return fmt.Errorf("api.retry_count cannot be negative")
	}

	switch c.Session.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("session.store must be 'memory' or 'redis', got %q", c.Session.Store)
	}
	switch strings.ToLower(c.Session.SameSite) {
	case "strict", "lax", "none":
	default:
		return fmt.Errorf("session.same_site must be strict, lax or none, got %q", c.Session.SameSite)
	}

	if c.Display.AchievementsPerSlide < 1 || c.Display.ProjectsPerSlide < 1 {
		return fmt.Errorf("display slide sizes must be positive")
	}

	if c.Storage.S3.Enabled && c.Storage.S3.Bucket == "" {
		return fmt.Errorf("storage.s3.bucket is required when storage.s3.enabled is set")
	}

	if c.IsProduction() {
		if !c.Session.SecureCookie {
			return fmt.Errorf("session.secure_cookie must be enabled in production")
		}
		if c.Site.Debug {
			return fmt.Errorf("site.debug cannot be enabled in production")
		}
	}

	return nil
}

// IsProduction reports whether the app runs in production
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// IsDevelopment reports whether the app runs in development
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// RedisAddr returns the host:port address of the Redis server
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/application/admin"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/application/auth"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/application/site"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/api"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/config"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/logger"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/storage"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/telemetry"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/interfaces/http/handler"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/interfaces/http/middleware"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/interfaces/http/view"
)

// Deps are the services the HTTP layer is built from
type Deps struct {
	Config    *config.Config
	Logger    *zap.Logger
	Metrics   *telemetry.Metrics // optional
	Services  *api.Services
	Auth      *auth.Service
	Site      *site.Service
	Managers  *admin.Managers
	Autoplays *site.Autoplays
	Mirror    storage.Mirror // optional
	Version   string
}

// Server is the assembled gin engine and the resources its routes own
type Server struct {
	Engine *gin.Engine

	carousel *handler.CarouselHandler
	limiters []*middleware.RateLimiter
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// Close ends the carousel streams and stops the rate limiter janitors
func (s *Server) Close() {
	s.carousel.Stop()
	for _, l := range s.limiters {
		l.Close()
	}
}

// New builds the engine with the middleware stack and every route
func New(d Deps) (*Server, error) {
	cfg := d.Config
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	tmpl, err := view.New()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	engine.SetHTMLTemplate(tmpl)

	// Middleware order: request ID, logging, recovery, tracing, metrics,
	// security headers, body limit.
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName))
		engine.Use(middleware.SpanEnricher())
	}
	if d.Metrics != nil {
		engine.Use(d.Metrics.GinMiddleware())
	}
	sec := middleware.DefaultSecurityConfig()
	sec.HSTSEnabled = cfg.IsProduction()
	engine.Use(middleware.Secure(sec))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	s := &Server{Engine: engine}

	var loginLimiter, contactLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		loginLimiter = middleware.NewRateLimiter(cfg.RateLimit.LoginRequests, cfg.RateLimit.LoginWindow)
		contactLimiter = middleware.NewRateLimiter(cfg.RateLimit.ContactRequests, cfg.RateLimit.ContactWindow)
		s.limiters = append(s.limiters, loginLimiter, contactLimiter)
		log.Info("Rate limiting enabled",
			zap.Int("login_requests", cfg.RateLimit.LoginRequests),
			zap.Int("contact_requests", cfg.RateLimit.ContactRequests))
	}

	var contactObserver handler.ContactObserver
	if d.Metrics != nil {
		contactObserver = d.Metrics
	}

	public := handler.NewPublicHandler(d.Site, d.Services.Contacts, contactObserver, cfg.Site)
	s.carousel = handler.NewCarouselHandler(d.Autoplays,
		handler.WithCarouselLogger(log),
		handler.WithCarouselHeartbeat(d.Config.Display.StreamHeartbeat),
		handler.WithCarouselMaxStreams(d.Config.Display.MaxStreams))
	authHandler := handler.NewAuthHandler(d.Auth)
	uploads := handler.NewUploadHandler(d.Services.Uploads, d.Mirror, d.Auth)
	health := handler.NewHealthHandler(d.Version, s.carousel.Running)

	engine.GET("/health", health.Health)
	if d.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}
	engine.NoRoute(public.NoRoute)

	r := NewRouter(engine)

	pages := NewDomainGroup("site", "")
	pages.GET("/", public.Home)
	pages.GET("/projects/:id", public.Project)
	pages.POST("/contact", middleware.RateLimit(contactLimiter), public.SubmitContact)
	pages.GET("/contact/whatsapp", public.WhatsApp)

	carousel := pages.Group("carousel", "/carousel")
	carousel.GET("/stream", s.carousel.Stream)
	carousel.POST("/:id/pause", s.carousel.Pause)
	carousel.POST("/:id/resume", s.carousel.Resume)

	cms := NewDomainGroup("admin", "/admin").Use(middleware.Session(d.Auth, cfg.Session))
	cms.GET("", authHandler.Index)
	cms.GET("/login", middleware.RedirectIfAuthenticated(), authHandler.LoginPage)
	cms.POST("/login", middleware.RedirectIfAuthenticated(), middleware.RateLimit(loginLimiter), authHandler.Login)
	cms.POST("/logout", authHandler.Logout)

	protected := cms.Group("protected", "").Use(middleware.RequireAuth())
	protected.GET("/dashboard", authHandler.Dashboard)
	for _, rh := range handler.NewResourceHandlers(d.Managers, d.Auth, cfg.Admin.RedirectDelay) {
		protected.Mount(rh)
	}

	upload := cms.Group("upload", "/upload").Use(middleware.RequireAuthAPI())
	upload.POST("/image", uploads.Image)
	upload.POST("/cv", uploads.CV)

	r.Register(pages).Register(cms)
	r.Setup()

	return s, nil
}

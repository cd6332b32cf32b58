package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/application/auth"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/session"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/config"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/logger"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/interfaces/http/dto"
)

// SessionKey is the gin context key holding the *session.Session
const SessionKey = "session"

const sessionConfigKey = "session_config"

// Admin routes
const (
	LoginPath     = "/admin/login"
	DashboardPath = "/admin/dashboard"
)

// Session resolves the admin session of the request from its cookie and
// stores it in the gin context. A session ID is issued on first visit.
func Session(svc *auth.Service, cfg config.SessionConfig) gin.HandlerFunc {
	sameSite := parseSameSite(cfg.SameSite)

	return func(c *gin.Context) {
		id, err := c.Cookie(cfg.CookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}
		c.SetSameSite(sameSite)
		setSessionCookie(c, cfg, id)

		ctx := logger.WithSessionID(c.Request.Context(), id)
		sess, err := svc.Boot(ctx, id)
		if err != nil {
			logger.L(ctx).Warn("Session boot failed", zap.Error(err))
		}
		c.Request = c.Request.WithContext(ctx)
		c.Set(SessionKey, sess)
		c.Set(sessionConfigKey, cfg)
		c.Next()
	}
}

// RenewSession moves the request's session to a fresh ID and reissues the
// cookie. Call it whenever the privilege of the session changes.
func RenewSession(c *gin.Context, svc *auth.Service) error {
	sess := GetSession(c)
	if sess == nil {
		return errors.New("no session on request")
	}
	if err := svc.Rotate(c.Request.Context(), sess); err != nil {
		return err
	}
	if v, ok := c.Get(sessionConfigKey); ok {
		if cfg, ok := v.(config.SessionConfig); ok {
			setSessionCookie(c, cfg, sess.ID())
		}
	}
	c.Request = c.Request.WithContext(logger.WithSessionID(c.Request.Context(), sess.ID()))
	return nil
}

// setSessionCookie replaces any session cookie already set on the response
func setSessionCookie(c *gin.Context, cfg config.SessionConfig, id string) {
	h := c.Writer.Header()
	prefix := cfg.CookieName + "="
	var kept []string
	for _, v := range h.Values("Set-Cookie") {
		if !strings.HasPrefix(v, prefix) {
			kept = append(kept, v)
		}
	}
	h.Del("Set-Cookie")
	for _, v := range kept {
		h.Add("Set-Cookie", v)
	}
	c.SetCookie(cfg.CookieName, id, int(cfg.MaxAge.Seconds()), cfg.CookiePath, "", cfg.SecureCookie, true)
}

// GetSession returns the session resolved by Session, or nil
func GetSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(SessionKey); ok {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}

func authenticated(c *gin.Context) bool {
	s := GetSession(c)
	return s != nil && s.IsAuthenticated()
}

// RequireAuth redirects unauthenticated requests to the login page
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticated(c) {
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAuthAPI answers 401 JSON to unauthenticated requests
func RequireAuthAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticated(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, "Please login first", c.GetString(RequestIDKey)))
			return
		}
		c.Next()
	}
}

// RedirectIfAuthenticated sends signed-in admins to the dashboard
func RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if authenticated(c) {
			c.Redirect(http.StatusSeeOther, DashboardPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

func parseSameSite(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

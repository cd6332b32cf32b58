package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/application/admin"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/application/auth"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/session"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/api"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/interfaces/http/middleware"
)

// NavItem is one entry of the admin navigation
type NavItem struct {
	Path  string
	Title string
}

// AdminNav lists the managed resources in navigation order
var AdminNav = []NavItem{
	{Path: "profiles", Title: "Profiles"},
	{Path: "experiences", Title: "Experiences"},
	{Path: "educations", Title: "Educations"},
	{Path: "skills", Title: "Skills"},
	{Path: "achievements", Title: "Achievements"},
	{Path: "projects", Title: "Projects"},
}

// LoginRequest is the login form
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// AuthHandler serves the admin login, logout and dashboard pages
type AuthHandler struct {
	BaseHandler
	auth *auth.Service
}

// NewAuthHandler creates the admin auth handler
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{auth: svc}
}

func adminPage(title string) gin.H {
	return gin.H{"Title": title + " | Admin", "Nav": AdminNav}
}

// takeFlash pops the session banner as an error flash, or nil
func takeFlash(c *gin.Context, svc *auth.Service, sess *session.Session) *admin.Flash {
	if sess == nil {
		return nil
	}
	msg := svc.TakeFlash(c.Request.Context(), sess.ID())
	if msg == "" {
		return nil
	}
	f := admin.Failure(msg)
	return &f
}

// LoginPage renders the login form
func (h *AuthHandler) LoginPage(c *gin.Context) {
	data := adminPage("Login")
	data["Flash"] = takeFlash(c, h.auth, middleware.GetSession(c))
	h.Render(c, http.StatusOK, "admin_login", data)
}

// Login authenticates the admin and redirects to the dashboard
func (h *AuthHandler) Login(c *gin.Context) {
	sess := middleware.GetSession(c)
	var req LoginRequest
	_ = c.ShouldBind(&req)
	req.Username = strings.TrimSpace(req.Username)

	fail := func(status int, msg string) {
		data := adminPage("Login")
		f := admin.Failure(msg)
		data["Flash"] = &f
		data["Username"] = req.Username
		h.Render(c, status, "admin_login", data)
	}

	if req.Username == "" || req.Password == "" {
		fail(http.StatusUnprocessableEntity, "Username and password are required")
		return
	}
	if sess == nil {
		fail(http.StatusInternalServerError, "Session unavailable. Please try again.")
		return
	}

	if err := h.auth.Login(c.Request.Context(), sess, req.Username, req.Password); err != nil {
		fail(http.StatusUnauthorized, auth.LoginMessage(err))
		return
	}
	if err := middleware.RenewSession(c, h.auth); err != nil {
		log(c).Error("Failed to renew session after login", zap.Error(err))
		_ = h.auth.Logout(c.Request.Context(), sess)
		fail(http.StatusInternalServerError, "Session unavailable. Please try again.")
		return
	}
	c.Redirect(http.StatusSeeOther, middleware.DashboardPath)
}

// Logout ends the admin session
func (h *AuthHandler) Logout(c *gin.Context) {
	if sess := middleware.GetSession(c); sess != nil {
		if err := h.auth.Logout(c.Request.Context(), sess); err != nil {
			log(c).Warn("Logout failed", zap.Error(err))
		}
		if err := middleware.RenewSession(c, h.auth); err != nil {
			log(c).Warn("Failed to renew session after logout", zap.Error(err))
		}
	}
	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

// Dashboard renders the admin landing page
func (h *AuthHandler) Dashboard(c *gin.Context) {
	sess := middleware.GetSession(c)
	data := adminPage("Dashboard")
	data["Username"] = auth.Username(sess.Token())
	data["Flash"] = takeFlash(c, h.auth, sess)
	h.Render(c, http.StatusOK, "admin_dashboard", data)
}

// Index redirects /admin to the dashboard
func (h *AuthHandler) Index(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, middleware.DashboardPath)
}

// denied ends a session the backend no longer accepts and sends the admin
// back to the login page
func denied(c *gin.Context, svc *auth.Service) {
	ctx := c.Request.Context()
	if sess := middleware.GetSession(c); sess != nil {
		if err := svc.Expire(ctx, sess); err != nil {
			log(c).Warn("Failed to expire session", zap.Error(err))
		}
		if err := middleware.RenewSession(c, svc); err != nil {
			log(c).Warn("Failed to renew session", zap.Error(err))
		}
		svc.SetFlash(c.Request.Context(), sess.ID(), api.AccessDeniedMessage)
	}
	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
	c.Abort()
}

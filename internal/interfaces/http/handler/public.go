package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/application/admin"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/application/site"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/contact"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/portfolio"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/api"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/config"
)

// ContactSubmitter sends contact forms to the backend
type ContactSubmitter interface {
	Submit(ctx context.Context, form contact.Form) api.Result[contact.Receipt]
}

// ContactObserver records contact submissions
type ContactObserver interface {
	ObserveContact(method string, success bool)
}

// ContactView is the state of the contact form
type ContactView struct {
	Form         contact.Form
	Errors       map[string]string
	Flash        *admin.Flash
	Receipt      *contact.Receipt
	WhatsAppLink string
}

// PublicHandler serves the portfolio pages
type PublicHandler struct {
	BaseHandler
	site     *site.Service
	contacts ContactSubmitter
	observer ContactObserver
	config   config.SiteConfig
}

// NewPublicHandler creates the public page handler. observer may be nil.
func NewPublicHandler(svc *site.Service, contacts ContactSubmitter, observer ContactObserver, cfg config.SiteConfig) *PublicHandler {
	return &PublicHandler{site: svc, contacts: contacts, observer: observer, config: cfg}
}

func (h *PublicHandler) page(title string, links site.Links) gin.H {
	if title == "" {
		title = links.OwnerName
	}
	return gin.H{"Title": title, "Links": links}
}

func newContactView() ContactView {
	return ContactView{Form: contact.Form{Method: contact.MethodWhatsApp}}
}

// Home renders the public page. Sections that fail are rendered inline.
func (h *PublicHandler) Home(c *gin.Context) {
	home := h.site.Home(c.Request.Context(), site.ParseQuery(c.Query))

	data := h.page(home.Links.AppName, home.Links)
	data["Home"] = home
	data["Contact"] = newContactView()
	h.Render(c, http.StatusOK, "home", data)
}

// Project renders the detail page of one project
func (h *PublicHandler) Project(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.notFound(c, "Project not found")
		return
	}

	page := h.site.Project(c.Request.Context(), id)
	status := http.StatusOK
	if page.Project.IsFailed() && page.Project.Message == "Project not found" {
		status = http.StatusNotFound
	}

	data := h.page(page.Project.Data.Title, page.Links)
	data["Page"] = page
	h.Render(c, status, "project", data)
}

func (h *PublicHandler) notFound(c *gin.Context, message string) {
	data := h.page("Not found", site.NewLinks(h.config, portfolio.Profile{}))
	data["Status"] = http.StatusNotFound
	data["Message"] = message
	h.Render(c, http.StatusNotFound, "error", data)
}

// NoRoute renders the 404 page
func (h *PublicHandler) NoRoute(c *gin.Context) {
	h.notFound(c, "The page you are looking for does not exist.")
}

// SubmitContact validates and sends the contact form. Invalid forms are
// answered with field messages and never reach the backend.
func (h *PublicHandler) SubmitContact(c *gin.Context) {
	view := newContactView()
	if err := c.ShouldBind(&view.Form); err != nil {
		log(c).Debug("Contact form binding failed", zap.Error(err))
	}

	res := h.contacts.Submit(c.Request.Context(), view.Form)
	if h.observer != nil {
		h.observer.ObserveContact(string(view.Form.Method), res.OK())
	}

	status := http.StatusOK
	switch {
	case res.OK():
		flash := admin.Success(res.Data.Message)
		if flash.Message == "" {
			flash.Message = "Message sent successfully"
		}
		view.Flash = &flash
		view.Receipt = &res.Data
		if view.Form.Method == contact.MethodWhatsApp && !res.Data.WhatsAppSent && h.config.WhatsAppNumber != "" {
			view.WhatsAppLink = contact.WhatsAppLink(h.config.WhatsAppNumber, view.Form)
		}
		view.Form = contact.Form{Method: view.Form.Method}
	case res.Err.Kind == api.KindValidation:
		flash := admin.Failure(res.Message())
		view.Flash = &flash
		view.Errors = res.Err.Fields
		status = http.StatusUnprocessableEntity
	default:
		flash := admin.Failure(res.Message())
		view.Flash = &flash
		if h.config.WhatsAppNumber != "" {
			view.WhatsAppLink = contact.WhatsAppLink(h.config.WhatsAppNumber, view.Form)
		}
		status = http.StatusBadGateway
	}

	data := h.page("Contact", site.NewLinks(h.config, portfolio.Profile{}))
	data["Contact"] = view
	h.Render(c, status, "contact_result", data)
}

// WhatsApp redirects to a wa.me chat pre-filled with the form content. The
// backend is not involved.
func (h *PublicHandler) WhatsApp(c *gin.Context) {
	var form contact.Form
	_ = c.ShouldBindQuery(&form)
	form.Normalize()
	c.Redirect(http.StatusFound, contact.WhatsAppLink(h.config.WhatsAppNumber, form))
}

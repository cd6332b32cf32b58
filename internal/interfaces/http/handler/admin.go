package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/application/admin"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/application/auth"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/portfolio"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/api"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/interfaces/http/dto"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/interfaces/http/middleware"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/interfaces/http/view"
)

// RouteRegistrar registers its routes on a group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// ResourceInfo names a managed resource in pages and URLs
type ResourceInfo struct {
	Path   string
	Title  string
	Single string
}

// Column is one column of a resource listing
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// Row is one rendered listing row
type Row struct {
	ID    int64
	Cells []string
}

// ResourceHandler serves list, create, edit and delete pages of one CMS
// resource. F is the HTML form bound from requests and converted to T.
type ResourceHandler[T portfolio.Keyed, F admin.Form[T]] struct {
	BaseHandler
	Info    ResourceInfo
	Manager *admin.Manager[T]
	ToForm  func(T) F
	Columns []Column[T]
	Uploads bool

	auth  *auth.Service
	delay time.Duration
}

// RegisterRoutes mounts the resource under rg at /<path>
func (h *ResourceHandler[T, F]) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/" + h.Info.Path)
	g.GET("", h.List)
	g.GET("/new", h.New)
	g.POST("", h.Create)
	g.GET("/:id/edit", h.Edit)
	g.POST("/:id", h.Update)
	g.POST("/:id/delete", h.Delete)
}

// ctx returns the request context carrying the admin token
func (h *ResourceHandler[T, F]) ctx(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if sess := middleware.GetSession(c); sess != nil {
		ctx = api.WithToken(ctx, sess.Token())
	}
	return ctx
}

func (h *ResourceHandler[T, F]) page(title string) gin.H {
	data := adminPage(title)
	data["Resource"] = h.Info
	return data
}

// List renders every record in display order
func (h *ResourceHandler[T, F]) List(c *gin.Context) {
	res := h.Manager.List(h.ctx(c))
	if res.Unauthorized() {
		denied(c, h.auth)
		return
	}

	data := h.page(h.Info.Title)
	headers := make([]string, 0, len(h.Columns))
	for _, col := range h.Columns {
		headers = append(headers, col.Header)
	}
	data["Headers"] = headers

	status := http.StatusOK
	if !res.OK() {
		f := admin.Failure(res.Message())
		data["Flash"] = &f
		status = dto.GetHTTPStatus(dto.CodeForAPIError(res.Err))
	}
	rows := make([]Row, 0, len(res.Data))
	for _, rec := range res.Data {
		row := Row{ID: rec.Key(), Cells: make([]string, 0, len(h.Columns))}
		for _, col := range h.Columns {
			row.Cells = append(row.Cells, col.Value(rec))
		}
		rows = append(rows, row)
	}
	data["Rows"] = rows
	h.Render(c, status, "admin_list", data)
}

// New renders the create form filled with defaults
func (h *ResourceHandler[T, F]) New(c *gin.Context) {
	rec, _, _ := h.Manager.Load(h.ctx(c), "")
	h.renderForm(c, http.StatusOK, "", h.ToForm(rec), nil, nil)
}

// Edit renders the edit form of one record
func (h *ResourceHandler[T, F]) Edit(c *gin.Context) {
	id := c.Param("id")
	rec, _, err := h.Manager.Load(h.ctx(c), id)
	if err != nil {
		if err.Kind == api.KindUnauthorized {
			denied(c, h.auth)
			return
		}
		h.done(c, dto.GetHTTPStatus(dto.CodeForAPIError(err)), admin.Failure(err.Message))
		return
	}
	h.renderForm(c, http.StatusOK, id, h.ToForm(rec), nil, nil)
}

// Create saves a new record
func (h *ResourceHandler[T, F]) Create(c *gin.Context) {
	h.save(c, "")
}

// Update saves an existing record
func (h *ResourceHandler[T, F]) Update(c *gin.Context) {
	h.save(c, c.Param("id"))
}

func (h *ResourceHandler[T, F]) save(c *gin.Context, id string) {
	var form F
	if err := c.ShouldBind(&form); err != nil {
		h.invalid(c, id, form, err)
		return
	}
	rec, err := form.ToRecord()
	if err != nil {
		h.invalid(c, id, form, err)
		return
	}

	_, flash, apiErr := h.Manager.Save(h.ctx(c), id, rec)
	if apiErr != nil {
		if apiErr.Kind == api.KindUnauthorized {
			denied(c, h.auth)
			return
		}
		log(c).Warn("Failed to save record", zap.String("resource", h.Info.Path), zap.Error(apiErr))
		status := dto.GetHTTPStatus(dto.CodeForAPIError(apiErr))
		h.renderForm(c, status, id, form, apiErr.Fields, &flash)
		return
	}
	h.done(c, http.StatusOK, flash)
}

// invalid re-renders the form with the messages of a binding or conversion
// error
func (h *ResourceHandler[T, F]) invalid(c *gin.Context, id string, form F, err error) {
	fields, ok := admin.FieldErrors(err)
	msg := "Please correct the highlighted fields"
	if !ok {
		msg = "Invalid form: " + err.Error()
	}
	f := admin.Failure(msg)
	h.renderForm(c, http.StatusUnprocessableEntity, id, form, fields, &f)
}

// Delete removes a record
func (h *ResourceHandler[T, F]) Delete(c *gin.Context) {
	flash, err := h.Manager.Delete(h.ctx(c), c.Param("id"))
	if err != nil {
		if err.Kind == api.KindUnauthorized {
			denied(c, h.auth)
			return
		}
		h.done(c, dto.GetHTTPStatus(dto.CodeForAPIError(err)), flash)
		return
	}
	h.done(c, http.StatusOK, flash)
}

func (h *ResourceHandler[T, F]) renderForm(c *gin.Context, status int, id string, form F, errs map[string]string, flash *admin.Flash) {
	title := "New " + h.Info.Single
	action := "/admin/" + h.Info.Path
	if id != "" {
		title = "Edit " + h.Info.Single
		action += "/" + id
	}
	data := h.page(title)
	data["Editing"] = id != ""
	data["Action"] = action
	data["Fields"] = view.Describe(form, errs)
	data["Flash"] = flash
	data["Uploads"] = h.Uploads
	h.Render(c, status, "admin_form", data)
}

// done shows the outcome banner and returns to the listing after the
// configured delay. The page script honours the exact delay; the Refresh
// header is the fallback without script.
func (h *ResourceHandler[T, F]) done(c *gin.Context, status int, flash admin.Flash) {
	target := "/admin/" + h.Info.Path
	c.Header("Refresh", refreshHeader(h.delay, target))
	data := h.page(h.Info.Title)
	data["Flash"] = &flash
	data["RedirectURL"] = target
	data["RedirectMS"] = h.delay.Milliseconds()
	h.Render(c, status, "admin_done", data)
}

// refreshHeader rounds delay up to whole seconds, the only unit browsers
// read from a Refresh header
func refreshHeader(delay time.Duration, target string) string {
	secs := int((delay + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d;url=%s", secs, target)
}

func itoa(n int) string { return strconv.Itoa(n) }

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// NewResourceHandlers builds the handlers of every CMS resource
func NewResourceHandlers(m *admin.Managers, svc *auth.Service, redirectDelay time.Duration) []RouteRegistrar {
	return []RouteRegistrar{
		&ResourceHandler[portfolio.Profile, admin.ProfileForm]{
			Info:    ResourceInfo{Path: "profiles", Title: "Profiles", Single: "Profile"},
			Manager: m.Profiles,
			ToForm:  admin.NewProfileForm,
			Columns: []Column[portfolio.Profile]{
				{Header: "Name", Value: func(p portfolio.Profile) string { return p.FullName }},
				{Header: "Title", Value: func(p portfolio.Profile) string { return p.Title }},
				{Header: "Location", Value: func(p portfolio.Profile) string { return p.Location }},
			},
			Uploads: true,
			auth:    svc, delay: redirectDelay,
		},
		&ResourceHandler[portfolio.Experience, admin.ExperienceForm]{
			Info:    ResourceInfo{Path: "experiences", Title: "Experiences", Single: "Experience"},
			Manager: m.Experiences,
			ToForm:  admin.NewExperienceForm,
			Columns: []Column[portfolio.Experience]{
				{Header: "Job title", Value: func(e portfolio.Experience) string { return e.JobTitle }},
				{Header: "Company", Value: func(e portfolio.Experience) string { return e.CompanyName }},
				{Header: "Period", Value: portfolio.Experience.Period},
				{Header: "Order", Value: func(e portfolio.Experience) string { return itoa(e.DisplayOrder) }},
			},
			auth: svc, delay: redirectDelay,
		},
		&ResourceHandler[portfolio.Education, admin.EducationForm]{
			Info:    ResourceInfo{Path: "educations", Title: "Educations", Single: "Education"},
			Manager: m.Educations,
			ToForm:  admin.NewEducationForm,
			Columns: []Column[portfolio.Education]{
				{Header: "Degree", Value: func(e portfolio.Education) string { return e.Degree }},
				{Header: "Institution", Value: func(e portfolio.Education) string { return e.InstitutionName }},
				{Header: "Period", Value: portfolio.Education.Period},
				{Header: "GPA", Value: portfolio.Education.GPADisplay},
			},
			auth: svc, delay: redirectDelay,
		},
		&ResourceHandler[portfolio.Skill, admin.SkillForm]{
			Info:    ResourceInfo{Path: "skills", Title: "Skills", Single: "Skill"},
			Manager: m.Skills,
			ToForm:  admin.NewSkillForm,
			Columns: []Column[portfolio.Skill]{
				{Header: "Skill", Value: func(s portfolio.Skill) string { return s.SkillName }},
				{Header: "Category", Value: func(s portfolio.Skill) string { return s.SkillCategory }},
				{Header: "Level", Value: func(s portfolio.Skill) string { return itoa(s.ProficiencyLevel) + "%" }},
				{Header: "Featured", Value: func(s portfolio.Skill) string { return yesNo(s.IsFeatured) }},
			},
			auth: svc, delay: redirectDelay,
		},
		&ResourceHandler[portfolio.Achievement, admin.AchievementForm]{
			Info:    ResourceInfo{Path: "achievements", Title: "Achievements", Single: "Achievement"},
			Manager: m.Achievements,
			ToForm:  admin.NewAchievementForm,
			Columns: []Column[portfolio.Achievement]{
				{Header: "Title", Value: func(a portfolio.Achievement) string { return a.Title }},
				{Header: "Issuer", Value: func(a portfolio.Achievement) string { return a.IssuingOrganization }},
				{Header: "Type", Value: func(a portfolio.Achievement) string { return a.AchievementType.Label() }},
				{Header: "Issued", Value: func(a portfolio.Achievement) string { return a.IssueDate.Display() }},
			},
			Uploads: true,
			auth:    svc, delay: redirectDelay,
		},
		&ResourceHandler[portfolio.Project, admin.ProjectForm]{
			Info:    ResourceInfo{Path: "projects", Title: "Projects", Single: "Project"},
			Manager: m.Projects,
			ToForm:  admin.NewProjectForm,
			Columns: []Column[portfolio.Project]{
				{Header: "Title", Value: func(p portfolio.Project) string { return p.Title }},
				{Header: "Status", Value: func(p portfolio.Project) string { return p.ResolvedStatus().Label() }},
				{Header: "Featured", Value: func(p portfolio.Project) string { return yesNo(p.IsFeatured) }},
				{Header: "Order", Value: func(p portfolio.Project) string { return itoa(p.DisplayOrder) }},
			},
			Uploads: true,
			auth:    svc, delay: redirectDelay,
		},
	}
}

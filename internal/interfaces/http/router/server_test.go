package router

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/application/admin"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/application/auth"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/application/site"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/api"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/config"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/session"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/telemetry"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/testutil"
)

type testApp struct {
	t       *testing.T
	backend *testutil.FakeBackend
	server  *httptest.Server
	client  *http.Client
}

func newTestApp(t *testing.T, mutate ...func(*config.Config)) *testApp {
	t.Helper()
	backend := testutil.NewFakeBackend(t)

	cfg := config.Defaults()
	cfg.Site.APIBaseURL = backend.APIBaseURL()
	cfg.Site.BackendURL = backend.Server.URL
	cfg.API.Timeout = 5 * time.Second
	cfg.API.RetryWaitTime = time.Millisecond
	cfg.API.RetryMaxWaitTime = time.Millisecond
	for _, m := range mutate {
		m(cfg)
	}

	client, err := api.NewClient(cfg.API, cfg.Site)
	require.NoError(t, err)
	services := api.NewServices(client)

	store := session.NewMemoryStore(time.Hour)
	t.Cleanup(func() { _ = store.Close() })

	authService := auth.NewService(store, services.Auth, auth.ServiceConfig{ValidateTTL: cfg.Session.ValidateTTL}, zap.NewNop())
	srv, err := New(Deps{
		Config:    cfg,
		Logger:    zap.NewNop(),
		Metrics:   telemetry.NewMetrics("test"),
		Services:  services,
		Auth:      authService,
		Site:      site.NewService(site.SourcesFrom(services), cfg.Site, site.Options{}, zap.NewNop()),
		Managers:  admin.NewManagers(services),
		Autoplays: site.NewAutoplays(20 * time.Millisecond),
		Version:   "test",
	})
	require.NoError(t, err)
	t.Cleanup(srv.Close)

	hs := httptest.NewServer(srv)
	t.Cleanup(hs.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testApp{
		t:       t,
		backend: backend,
		server:  hs,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

type response struct {
	status int
	header http.Header
	body   string
}

func (a *testApp) do(req *http.Request) response {
	a.t.Helper()
	resp, err := a.client.Do(req)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return response{status: resp.StatusCode, header: resp.Header, body: string(body)}
}

func (a *testApp) get(path string) response {
	a.t.Helper()
	req, err := http.NewRequest(http.MethodGet, a.server.URL+path, nil)
	require.NoError(a.t, err)
	return a.do(req)
}

func (a *testApp) postForm(path string, form url.Values) response {
	a.t.Helper()
	req, err := http.NewRequest(http.MethodPost, a.server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

func (a *testApp) upload(path, filename, contentType string, content []byte) response {
	a.t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(a.t, err)
	_, err = part.Write(content)
	require.NoError(a.t, err)
	require.NoError(a.t, w.Close())

	req, err := http.NewRequest(http.MethodPost, a.server.URL+path, &buf)
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return a.do(req)
}

func (a *testApp) login() {
	a.t.Helper()
	user, pass := a.backend.Credentials()
	res := a.postForm("/admin/login", url.Values{"username": {user}, "password": {pass}})
	require.Equal(a.t, http.StatusSeeOther, res.status)
	require.Equal(a.t, "/admin/dashboard", res.header.Get("Location"))
}

func TestServer_Health(t *testing.T) {
	app := newTestApp(t)

	res := app.get("/health")
	require.Equal(t, http.StatusOK, res.status)
	assert.True(t, gjson.Get(res.body, "success").Bool())
	assert.Equal(t, "ok", gjson.Get(res.body, "data.status").String())
	assert.Equal(t, "test", gjson.Get(res.body, "data.version").String())
	assert.NotEmpty(t, res.header.Get("X-Request-ID"))
}

func TestServer_Metrics(t *testing.T) {
	app := newTestApp(t)
	app.get("/health")

	res := app.get("/metrics")
	require.Equal(t, http.StatusOK, res.status)
	assert.Contains(t, res.body, "test_http_requests_total")
}

func TestServer_Home(t *testing.T) {
	app := newTestApp(t)
	name := gofakeit.Name()
	app.backend.Seed("profiles", testutil.Record{"fullName": name, "title": "Engineer", "email": gofakeit.Email()})
	app.backend.Seed("projects", testutil.Record{"title": "Portfolio Site", "description": "Personal site", "status": "COMPLETED", "isFeatured": true})

	t.Run("renders every section", func(t *testing.T) {
		res := app.get("/")
		require.Equal(t, http.StatusOK, res.status)
		assert.Contains(t, res.body, name)
		assert.Contains(t, res.body, "Portfolio Site")
		assert.Contains(t, res.header.Get("Content-Security-Policy"), "default-src 'self'")
	})

	t.Run("a failing section does not fail the page", func(t *testing.T) {
		app.backend.FailWith("GET /projects/public/all", http.StatusInternalServerError)
		t.Cleanup(func() { app.backend.FailWith("GET /projects/public/all", 0) })

		res := app.get("/")
		require.Equal(t, http.StatusOK, res.status)
		assert.Contains(t, res.body, name)
		assert.NotContains(t, res.body, "Portfolio Site")
		assert.Contains(t, res.body, `<div class="banner error">forced failure 500</div>`)
	})
}

func TestServer_ProjectDetail(t *testing.T) {
	app := newTestApp(t)
	ids := app.backend.Seed("projects", testutil.Record{"title": "Inventory API", "description": "Stock service"})

	res := app.get("/projects/" + strconv.FormatInt(ids[0], 10))
	require.Equal(t, http.StatusOK, res.status)
	assert.Contains(t, res.body, "Inventory API")

	assert.Equal(t, http.StatusNotFound, app.get("/projects/999").status)
	assert.Equal(t, http.StatusNotFound, app.get("/projects/abc").status)
	assert.Equal(t, http.StatusNotFound, app.get("/no/such/page").status)
}

func TestServer_Contact(t *testing.T) {
	t.Run("invalid form never reaches the backend", func(t *testing.T) {
		app := newTestApp(t)

		res := app.postForm("/contact", url.Values{"contactMethod": {"email"}})
		assert.Equal(t, http.StatusUnprocessableEntity, res.status)
		assert.Contains(t, res.body, "Please fill in all required fields")
		assert.Empty(t, app.backend.Contacts())
		assert.Zero(t, app.backend.Calls("POST /contacts/submit"))
	})

	t.Run("valid form is submitted", func(t *testing.T) {
		app := newTestApp(t)

		res := app.postForm("/contact", url.Values{
			"name":          {gofakeit.Name()},
			"email":         {gofakeit.Email()},
			"subject":       {"Collaboration"},
			"message":       {"Let us build something."},
			"contactMethod": {"email"},
		})
		require.Equal(t, http.StatusOK, res.status)
		assert.Contains(t, res.body, "Message sent successfully")
		require.Len(t, app.backend.Contacts(), 1)
		assert.Equal(t, "Collaboration", app.backend.Contacts()[0]["subject"])
	})

	t.Run("submissions are rate limited", func(t *testing.T) {
		app := newTestApp(t, func(cfg *config.Config) {
			cfg.RateLimit.Enabled = true
			cfg.RateLimit.ContactRequests = 1
		})

		form := url.Values{"name": {"Ada"}, "subject": {"Hi"}, "message": {"Hello"}, "phoneNumber": {"0812345678"}}
		assert.Equal(t, http.StatusOK, app.postForm("/contact", form).status)
		res := app.postForm("/contact", form)
		assert.Equal(t, http.StatusTooManyRequests, res.status)
		assert.Equal(t, "ERR_RATE_LIMITED", gjson.Get(res.body, "error.code").String())
	})

	t.Run("whatsapp link redirect", func(t *testing.T) {
		app := newTestApp(t)

		res := app.get("/contact/whatsapp?name=Ada&subject=Hi&message=Hello")
		require.Equal(t, http.StatusFound, res.status)
		loc := res.header.Get("Location")
		assert.True(t, strings.HasPrefix(loc, "https://wa.me/6285600121760?text="), loc)
		assert.Zero(t, app.backend.TotalCalls())
	})
}

func TestServer_AdminLogin(t *testing.T) {
	app := newTestApp(t)

	res := app.get("/admin/dashboard")
	require.Equal(t, http.StatusSeeOther, res.status)
	assert.Equal(t, "/admin/login", res.header.Get("Location"))

	res = app.postForm("/admin/login", url.Values{"username": {"admin"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Contains(t, res.body, "Invalid username or password")

	res = app.postForm("/admin/login", url.Values{"username": {"admin"}})
	assert.Equal(t, http.StatusUnprocessableEntity, res.status)

	app.login()

	res = app.get("/admin/dashboard")
	require.Equal(t, http.StatusOK, res.status)
	assert.Contains(t, res.body, "Welcome")

	res = app.get("/admin/login")
	assert.Equal(t, http.StatusSeeOther, res.status)
	assert.Equal(t, "/admin/dashboard", res.header.Get("Location"))

	res = app.get("/admin")
	assert.Equal(t, http.StatusSeeOther, res.status)

	res = app.postForm("/admin/logout", nil)
	require.Equal(t, http.StatusSeeOther, res.status)
	assert.Equal(t, "/admin/login", res.header.Get("Location"))

	res = app.get("/admin/dashboard")
	assert.Equal(t, http.StatusSeeOther, res.status)
}

func (a *testApp) sessionID() string {
	a.t.Helper()
	u, err := url.Parse(a.server.URL)
	require.NoError(a.t, err)
	name := config.Defaults().Session.CookieName
	for _, c := range a.client.Jar.Cookies(u) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func TestServer_SessionRenewedOnPrivilegeChange(t *testing.T) {
	app := newTestApp(t)

	app.get("/admin/login")
	anonymous := app.sessionID()
	require.NotEmpty(t, anonymous)

	app.login()
	signedIn := app.sessionID()
	require.NotEmpty(t, signedIn)
	assert.NotEqual(t, anonymous, signedIn)

	// a client holding only the pre-login cookie gets nothing
	req, err := http.NewRequest(http.MethodGet, app.server.URL+"/admin/dashboard", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: config.Defaults().Session.CookieName, Value: anonymous})
	plain := &http.Client{CheckRedirect: app.client.CheckRedirect}
	resp, err := plain.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/login", resp.Header.Get("Location"))

	res := app.get("/admin/dashboard")
	assert.Equal(t, http.StatusOK, res.status)

	res = app.postForm("/admin/logout", nil)
	require.Equal(t, http.StatusSeeOther, res.status)
	assert.NotEqual(t, signedIn, app.sessionID())
	assert.Len(t, res.header.Values("Set-Cookie"), 1)
}

func TestServer_AdminProjects(t *testing.T) {
	app := newTestApp(t)
	app.login()

	res := app.get("/admin/projects/new")
	require.Equal(t, http.StatusOK, res.status)
	assert.Contains(t, res.body, `name="title"`)

	res = app.postForm("/admin/projects", url.Values{"description": {"No title"}})
	assert.Equal(t, http.StatusUnprocessableEntity, res.status)
	assert.Contains(t, res.body, "This field is required")
	assert.Empty(t, app.backend.Records("projects"))

	res = app.postForm("/admin/projects", url.Values{"title": {"Bad dates"}, "description": {"x"}, "startDate": {"05/01/2024"}})
	assert.Equal(t, http.StatusUnprocessableEntity, res.status)
	assert.Contains(t, res.body, "Use the YYYY-MM-DD format")

	res = app.postForm("/admin/projects", url.Values{
		"title":                {"Portfolio"},
		"description":          {"Personal site"},
		"status":               {"in_progress"},
		"completionPercentage": {"40"},
		"startDate":            {"2024-05-01"},
	})
	require.Equal(t, http.StatusOK, res.status)
	assert.Contains(t, res.body, "Project created successfully!")
	assert.Equal(t, "2;url=/admin/projects", res.header.Get("Refresh"))
	assert.Regexp(t, `setTimeout\(function \(\) \{ location\.href = .*; \}, +1500 *\)`, res.body)

	records := app.backend.Records("projects")
	require.Len(t, records, 1)
	assert.Equal(t, "IN_PROGRESS", records[0]["status"])
	id := fmt.Sprint(records[0]["id"])

	res = app.get("/admin/projects")
	require.Equal(t, http.StatusOK, res.status)
	assert.Contains(t, res.body, "Portfolio")
	assert.Contains(t, res.body, "/admin/projects/"+id+"/edit")

	res = app.get("/admin/projects/" + id + "/edit")
	require.Equal(t, http.StatusOK, res.status)
	assert.Contains(t, res.body, `value="Portfolio"`)

	res = app.postForm("/admin/projects/"+id, url.Values{"title": {"Portfolio v2"}, "description": {"Personal site"}})
	require.Equal(t, http.StatusOK, res.status)
	assert.Contains(t, res.body, "Project updated successfully!")
	assert.Equal(t, "Portfolio v2", app.backend.Records("projects")[0]["title"])

	res = app.postForm("/admin/projects/"+id+"/delete", nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Contains(t, res.body, "Project deleted successfully!")
	assert.Empty(t, app.backend.Records("projects"))
}

func TestServer_AdminAccessDenied(t *testing.T) {
	app := newTestApp(t)
	app.login()
	signedIn := app.sessionID()

	app.backend.FailWith("POST /projects", http.StatusForbidden)
	res := app.postForm("/admin/projects", url.Values{"title": {"Denied"}, "description": {"x"}})
	require.Equal(t, http.StatusSeeOther, res.status)
	assert.Equal(t, "/admin/login", res.header.Get("Location"))
	assert.NotEqual(t, signedIn, app.sessionID())

	res = app.get("/admin/login")
	require.Equal(t, http.StatusOK, res.status)
	assert.Contains(t, res.body, "Access denied. Please login again.")

	// The banner is shown once.
	res = app.get("/admin/login")
	assert.NotContains(t, res.body, "Access denied")

	assert.Equal(t, http.StatusSeeOther, app.get("/admin/dashboard").status)
}

func TestServer_Uploads(t *testing.T) {
	t.Run("requires a session", func(t *testing.T) {
		app := newTestApp(t)

		res := app.upload("/admin/upload/image", "me.png", "image/png", testutil.PNG)
		assert.Equal(t, http.StatusUnauthorized, res.status)
		assert.Equal(t, "ERR_UNAUTHORIZED", gjson.Get(res.body, "error.code").String())
	})

	t.Run("uploads an image", func(t *testing.T) {
		app := newTestApp(t)
		app.login()

		res := app.upload("/admin/upload/image", "me.png", "image/png", testutil.PNG)
		require.Equal(t, http.StatusOK, res.status, res.body)
		assert.True(t, strings.HasPrefix(gjson.Get(res.body, "data.url").String(), app.backend.Server.URL))
		assert.Equal(t, "me.png", gjson.Get(res.body, "data.originalName").String())
	})

	t.Run("rejects files over 5MB without calling the backend", func(t *testing.T) {
		app := newTestApp(t, func(cfg *config.Config) { cfg.HTTP.MaxBodySize = 20 << 20 })
		app.login()

		big := append(append([]byte{}, testutil.PNG...), bytes.Repeat([]byte{0}, 6<<20)...)
		res := app.upload("/admin/upload/image", "big.png", "image/png", big)
		assert.Equal(t, http.StatusRequestEntityTooLarge, res.status)
		assert.Equal(t, "ERR_VALIDATION_FILE_TOO_LARGE", gjson.Get(res.body, "error.code").String())
		assert.Zero(t, app.backend.Calls("POST /upload/image"))
	})

	t.Run("rejects the wrong file type", func(t *testing.T) {
		app := newTestApp(t)
		app.login()

		res := app.upload("/admin/upload/cv", "cv.png", "image/png", testutil.PNG)
		assert.Equal(t, http.StatusBadRequest, res.status)
		assert.Contains(t, gjson.Get(res.body, "error.message").String(), "Only PDF, DOC, and DOCX files are allowed")
	})
}

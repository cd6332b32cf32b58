// Package testutil provides an in-memory portfolio REST backend for tests.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/portfolio"
)

// Collections served by the fake backend
var Collections = []string{"profiles", "experiences", "educations", "skills", "achievements", "projects"}

// Record is a stored JSON object
type Record = map[string]any

// FakeBackend mimics the portfolio REST API. Mutations require
// "Authorization: Bearer <ValidToken>".
type FakeBackend struct {
	Server *httptest.Server

	mu         sync.Mutex
	nextID     int64
	records    map[string][]Record
	calls      map[string]int
	contacts   []Record
	failures   map[string]int
	envelope   bool
	validToken string
	username   string
	password   string
}

// NewFakeBackend starts a fake backend that is closed with the test
func NewFakeBackend(t testing.TB) *FakeBackend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &FakeBackend{
		records:    make(map[string][]Record),
		calls:      make(map[string]int),
		failures:   make(map[string]int),
		validToken: "valid-token",
		username:   "admin",
		password:   "secret",
	}
	f.Server = httptest.NewServer(f.routes())
	t.Cleanup(f.Server.Close)
	return f
}

// APIBaseURL is the value for SiteConfig.APIBaseURL
func (f *FakeBackend) APIBaseURL() string { return f.Server.URL + "/api" }

// ValidToken returns the token accepted by /auth/validate
func (f *FakeBackend) ValidToken() string { return f.validToken }

// Credentials returns the username and password accepted by /auth/login
func (f *FakeBackend) Credentials() (string, string) { return f.username, f.password }

// UseEnvelope makes every 2xx JSON answer wrapped as {success, data}
func (f *FakeBackend) UseEnvelope(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.envelope = on
}

// Calls returns how often "METHOD /route" was hit, e.g. "POST /auth/validate"
func (f *FakeBackend) Calls(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[route]
}

// TotalCalls returns the number of requests served
func (f *FakeBackend) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// FailWith makes route answer status for every request until cleared with 0
func (f *FakeBackend) FailWith(route string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if status == 0 {
		delete(f.failures, route)
		return
	}
	f.failures[route] = status
}

// Seed stores records and returns their ids
func (f *FakeBackend) Seed(collection string, records ...Record) []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(records))
	for _, r := range records {
		ids = append(ids, f.insert(collection, r))
	}
	return ids
}

// Records returns a copy of a collection
func (f *FakeBackend) Records(collection string) []Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.records[collection])
}

// Contacts returns the submitted contact forms
func (f *FakeBackend) Contacts() []Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.contacts)
}

func (f *FakeBackend) insert(collection string, r Record) int64 {
	f.nextID++
	stored := Record{}
	for k, v := range r {
		stored[k] = v
	}
	stored["id"] = f.nextID
	f.records[collection] = append(f.records[collection], stored)
	return f.nextID
}

func (f *FakeBackend) routes() http.Handler {
	r := gin.New()
	api := r.Group("/api", f.track)

	api.POST("/auth/login", f.login)
	api.POST("/auth/validate", f.validate)

	for _, name := range Collections {
		g := api.Group("/" + name)
		g.GET("", f.list(name, nil))
		g.POST("", f.requireToken, f.create(name))
		g.GET("/:id", f.get(name))
		g.PUT("/:id", f.requireToken, f.update(name))
		g.DELETE("/:id", f.requireToken, f.remove(name))
	}

	api.GET("/profiles/public", f.publicProfile)
	api.GET("/skills/featured", f.list("skills", isFeatured))
	api.GET("/skills/categories", f.skillCategories)
	api.GET("/skills/category/:category", f.skillsByCategory)
	api.GET("/achievements/featured", f.list("achievements", isFeatured))
	api.GET("/projects/public/all", f.list("projects", nil))
	api.GET("/projects/public/current", f.list("projects", hasStatus(false)))
	api.GET("/projects/public/finished", f.list("projects", hasStatus(true)))

	api.POST("/contacts/submit", f.submitContact)
	api.POST("/upload/image", f.requireToken, f.upload("url"))
	api.POST("/upload/cv", f.requireToken, f.upload("fileUrl"))
	return r
}

func (f *FakeBackend) track(c *gin.Context) {
	route := c.Request.Method + " " + strings.TrimPrefix(c.FullPath(), "/api")

	f.mu.Lock()
	f.calls[route]++
	status := f.failures[route]
	f.mu.Unlock()

	if status != 0 {
		c.AbortWithStatusJSON(status, gin.H{"message": fmt.Sprintf("forced failure %d", status)})
		return
	}
	c.Next()
}

func (f *FakeBackend) reply(c *gin.Context, status int, payload any) {
	f.mu.Lock()
	envelope := f.envelope
	f.mu.Unlock()

	if envelope {
		c.JSON(status, gin.H{"success": true, "data": payload, "message": "ok"})
		return
	}
	c.JSON(status, payload)
}

func (f *FakeBackend) requireToken(c *gin.Context) {
	if c.GetHeader("Authorization") != "Bearer "+f.validToken {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied"})
		return
	}
	c.Next()
}

func (f *FakeBackend) login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}
	if req.Username != f.username || req.Password != f.password {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
		return
	}
	f.reply(c, http.StatusOK, gin.H{"token": f.validToken})
}

func (f *FakeBackend) validate(c *gin.Context) {
	valid := c.GetHeader("Authorization") == "Bearer "+f.validToken
	f.reply(c, http.StatusOK, gin.H{"valid": valid})
}

func (f *FakeBackend) list(name string, keep func(Record) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		f.mu.Lock()
		out := []Record{}
		for _, r := range f.records[name] {
			if keep == nil || keep(r) {
				out = append(out, r)
			}
		}
		f.mu.Unlock()
		f.reply(c, http.StatusOK, out)
	}
}

func (f *FakeBackend) find(name, rawID string) (int, bool) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return 0, false
	}
	for i, r := range f.records[name] {
		if r["id"] == id {
			return i, true
		}
	}
	return 0, false
}

func (f *FakeBackend) get(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		f.mu.Lock()
		i, ok := f.find(name, c.Param("id"))
		var rec Record
		if ok {
			rec = f.records[name][i]
		}
		f.mu.Unlock()

		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": strings.TrimSuffix(name, "s") + " not found"})
			return
		}
		f.reply(c, http.StatusOK, rec)
	}
}

func (f *FakeBackend) create(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body Record
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON"})
			return
		}
		f.mu.Lock()
		id := f.insert(name, body)
		i, _ := f.find(name, strconv.FormatInt(id, 10))
		rec := f.records[name][i]
		f.mu.Unlock()
		f.reply(c, http.StatusCreated, rec)
	}
}

func (f *FakeBackend) update(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body Record
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON"})
			return
		}
		f.mu.Lock()
		i, ok := f.find(name, c.Param("id"))
		if ok {
			body["id"] = f.records[name][i]["id"]
			f.records[name][i] = body
		}
		f.mu.Unlock()

		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
			return
		}
		f.reply(c, http.StatusOK, body)
	}
}

func (f *FakeBackend) remove(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		f.mu.Lock()
		i, ok := f.find(name, c.Param("id"))
		if ok {
			f.records[name] = slices.Delete(f.records[name], i, i+1)
		}
		f.mu.Unlock()

		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func (f *FakeBackend) publicProfile(c *gin.Context) {
	f.mu.Lock()
	profiles := slices.Clone(f.records["profiles"])
	f.mu.Unlock()

	if len(profiles) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No public profile"})
		return
	}
	f.reply(c, http.StatusOK, profiles[0])
}

func (f *FakeBackend) skillCategories(c *gin.Context) {
	f.mu.Lock()
	var cats []string
	for _, r := range f.records["skills"] {
		if cat, _ := r["skillCategory"].(string); cat != "" && !slices.Contains(cats, cat) {
			cats = append(cats, cat)
		}
	}
	f.mu.Unlock()
	f.reply(c, http.StatusOK, cats)
}

func (f *FakeBackend) skillsByCategory(c *gin.Context) {
	cat := c.Param("category")
	f.list("skills", func(r Record) bool { return r["skillCategory"] == cat })(c)
}

func (f *FakeBackend) submitContact(c *gin.Context) {
	var body Record
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid JSON"})
		return
	}
	f.mu.Lock()
	f.contacts = append(f.contacts, body)
	id := len(f.contacts)
	f.mu.Unlock()

	method, _ := body["contactMethod"].(string)
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Message sent successfully",
		"contactId":     id,
		"whatsappSent":  method == "whatsapp",
		"emailSent":     method == "email",
		"primaryMethod": method,
	})
}

func (f *FakeBackend) upload(urlField string) gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please select a file to upload"})
			return
		}
		name := uuid.NewString() + strings.ToLower(fileExt(fh.Filename))
		f.reply(c, http.StatusOK, gin.H{
			urlField:       "/api/upload/files/" + name,
			"filename":     name,
			"originalName": fh.Filename,
			"size":         strconv.FormatInt(fh.Size, 10),
		})
	}
}

func fileExt(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}

func isFeatured(r Record) bool {
	featured, _ := r["isFeatured"].(bool)
	return featured
}

func hasStatus(finished bool) func(Record) bool {
	return func(r Record) bool {
		status, _ := r["status"].(string)
		done := portfolio.ResolveStatus(status, number(r["completionPercentage"])) == portfolio.StatusCompleted
		return done == finished
	}
}

func number(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	}
	return 0
}

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type pingRoutes struct{}

func (pingRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/mounted", func(c *gin.Context) { c.String(http.StatusOK, "mounted") })
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.NotNil(t, r)
	assert.Empty(t, r.registrars)

	r.Register(NewDomainGroup("test", "/test"))
	assert.Len(t, r.registrars, 1)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	r.Register(group).Register(NewDomainGroup("root", "").GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "home")
	}))
	r.Setup()

	w := serve(engine, http.MethodGet, "/test/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	w = serve(engine, http.MethodGet, "/")
	assert.Equal(t, "home", w.Body.String())
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("admin", "/admin")
		assert.Equal(t, "admin", g.Name())
		assert.Equal(t, "/admin", g.Prefix())
	})

	t.Run("registers GET and POST routes", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.GET("/items", func(c *gin.Context) { c.String(http.StatusOK, "list") })
		g.POST("/items", func(c *gin.Context) { c.String(http.StatusCreated, "created") })
		g.RegisterRoutes(engine.Group(""))

		assert.Equal(t, "list", serve(engine, http.MethodGet, "/test/items").Body.String())
		assert.Equal(t, http.StatusCreated, serve(engine, http.MethodPost, "/test/items").Code)
	})

	t.Run("middleware applies to subgroups and mounts", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("admin", "/admin").Use(func(c *gin.Context) {
			c.Header("X-Group", "admin")
			c.Next()
		})
		g.Group("nested", "/nested").GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
		g.Mount(pingRoutes{})
		g.RegisterRoutes(engine.Group(""))

		w := serve(engine, http.MethodGet, "/admin/nested/ok")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "admin", w.Header().Get("X-Group"))

		w = serve(engine, http.MethodGet, "/admin/mounted")
		assert.Equal(t, "mounted", w.Body.String())
		assert.Equal(t, "admin", w.Header().Get("X-Group"))
	})

	t.Run("subgroup middleware does not leak to parent", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("admin", "/admin")
		g.GET("/open", func(c *gin.Context) { c.Status(http.StatusOK) })
		g.Group("guarded", "").Use(func(c *gin.Context) {
			c.AbortWithStatus(http.StatusForbidden)
		}).GET("/closed", func(c *gin.Context) { c.Status(http.StatusOK) })
		g.RegisterRoutes(engine.Group(""))

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/admin/open").Code)
		assert.Equal(t, http.StatusForbidden, serve(engine, http.MethodGet, "/admin/closed").Code)
	})
}

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

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func denyAll(c *gin.Context) {
	c.AbortWithStatus(http.StatusUnauthorized)
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterPublicAndProtected(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine).Use(denyAll)

	public := NewDomainGroup("auth", "/auth")
	public.POST("/login", func(c *gin.Context) { c.String(http.StatusOK, "token") })

	sales := NewDomainGroup("sales", "/sales")
	sales.GET("", func(c *gin.Context) { c.String(http.StatusOK, "sales") })

	r.RegisterPublic(public).Register(sales)
	r.Setup()

	w := serve(engine, http.MethodPost, "/api/v1/auth/login")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "token", w.Body.String())

	w = serve(engine, http.MethodGet, "/api/v1/sales")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDomainGroupMethods(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("tables", "/tables")
	ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }
	g.GET("/:id", ok).
		POST("", ok).
		PUT("/:id", ok).
		PATCH("/:id", ok).
		DELETE("/:id", ok)
	g.RegisterRoutes(engine.Group("/api/v1"))

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/tables/7"},
		{http.MethodPost, "/api/v1/tables"},
		{http.MethodPut, "/api/v1/tables/7"},
		{http.MethodPatch, "/api/v1/tables/7"},
		{http.MethodDelete, "/api/v1/tables/7"},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := serve(engine, tt.method, tt.path)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.method, w.Body.String())
		})
	}
}

func TestDomainGroupMiddlewareReachesSubgroups(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("inventory", "/inventory")
	g.Use(func(c *gin.Context) {
		c.Header("X-Group", "inventory")
		c.Next()
	})
	g.Group("items", "/items").GET("", func(c *gin.Context) { c.String(http.StatusOK, "items") })

	assert.Equal(t, "inventory", g.Name())
	assert.Equal(t, "/inventory", g.Prefix())

	g.RegisterRoutes(engine.Group("/api/v1"))
	w := serve(engine, http.MethodGet, "/api/v1/inventory/items")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "inventory", w.Header().Get("X-Group"))
}

func TestRouteLevelHandlersRunInOrder(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("sales", "/sales")
	guard := func(c *gin.Context) {
		if c.GetHeader("X-Role") != "cashier" {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
	g.POST("/:id/close", guard, func(c *gin.Context) { c.Status(http.StatusOK) })
	NewRouter(engine).Register(g).Setup()

	w := serve(engine, http.MethodPost, "/api/v1/sales/1/close")
	assert.Equal(t, http.StatusForbidden, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales/1/close", nil)
	req.Header.Set("X-Role", "cashier")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

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

type testRegistrar struct {
	path string
}

func (r *testRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET(r.path, func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
}

func TestRouterSetup(t *testing.T) {
	t.Run("mounts registrars under the default version prefix", func(t *testing.T) {
		engine := gin.New()
		NewRouter(engine).
			Register(&testRegistrar{path: "/ping"}).
			Setup()

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("honors a custom API version", func(t *testing.T) {
		engine := gin.New()
		NewRouter(engine, WithAPIVersion("v2")).
			Register(&testRegistrar{path: "/ping"}).
			Setup()

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v2/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("multiple registrars share the prefix", func(t *testing.T) {
		engine := gin.New()
		NewRouter(engine).
			Register(&testRegistrar{path: "/a"}).
			Register(&testRegistrar{path: "/b"}).
			Setup()

		for _, path := range []string{"/api/v1/a", "/api/v1/b"} {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, w.Code, path)
		}
	})
}

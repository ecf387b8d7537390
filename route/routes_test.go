package route_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ristorante/route"
)

// bareRouter has no database and no object store configured, which is
// exactly the state the config guards exist for.
func bareRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	route.Register(router, nil, nil, "secret")
	return router
}

func do(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestOptionsAlwaysNoContent(t *testing.T) {
	router := bareRouter()

	for _, path := range []string{"/api/menu", "/api/admin/menu", "/img/x.png", "/no/such/route"} {
		w := do(router, http.MethodOptions, path, nil)
		assert.Equal(t, http.StatusNoContent, w.Code, "path: %s", path)
		assert.Empty(t, w.Body.String())
	}
}

func TestUnknownRouteNotFound(t *testing.T) {
	router := bareRouter()

	w := do(router, http.MethodGet, "/no/such/route", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
}

func TestWrongMethodFallsThroughToNotFound(t *testing.T) {
	router := bareRouter()

	// No 405 semantics: a known path with the wrong method is a 404.
	w := do(router, http.MethodDelete, "/api/menu", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMissingDatabaseConfig(t *testing.T) {
	router := bareRouter()

	for _, path := range []string{"/api/health", "/api/menu", "/api/page/home"} {
		w := do(router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code, "path: %s", path)
		assert.JSONEq(t, `{"error":"DATABASE_URL missing"}`, w.Body.String())
	}
}

func TestMissingStorageConfig(t *testing.T) {
	router := bareRouter()

	w := do(router, http.MethodGet, "/img/gallery/x.png", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"storage not configured"}`, w.Body.String())

	w = do(router, http.MethodPost, "/api/admin/gallery/upload", map[string]string{"Authorization": "Bearer secret"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"storage not configured"}`, w.Body.String())
}

func TestAdminGuardRunsBeforeConfigGuards(t *testing.T) {
	router := bareRouter()

	// Even with nothing configured, a missing token is reported first.
	w := do(router, http.MethodGet, "/api/admin/reservations", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
}

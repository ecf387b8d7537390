package controller_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadImage(t *testing.T, router *gin.Engine, filename string, content []byte, admin bool) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/gallery/upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if admin {
		req.Header.Set("Authorization", "Bearer "+testAdminToken)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGalleryUploadAndServe(t *testing.T) {
	router, _ := setupRouter(t)

	content := []byte("fake png bytes")
	w := uploadImage(t, router, "piatto.PNG", content, true)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	key := body["key"].(string)
	assert.True(t, strings.HasPrefix(key, "gallery/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.Contains(t, body["url"], "/img/"+key)

	req := httptest.NewRequest(http.MethodGet, "/img/"+key, nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, content, res.Body.Bytes())
	assert.Equal(t, "image/png", res.Header().Get("Content-Type"))
	assert.NotEmpty(t, res.Header().Get("ETag"))
	assert.Equal(t, "public, max-age=86400", res.Header().Get("Cache-Control"))
}

func TestGalleryUploadExtensionRules(t *testing.T) {
	router, _ := setupRouter(t)

	cases := []struct {
		filename string
		want     int
	}{
		{"foto.gif", http.StatusBadRequest},
		{"foto.svg", http.StatusBadRequest},
		{"foto.jpg", http.StatusCreated},
		{"foto.jpeg", http.StatusCreated},
		{"foto.webp", http.StatusCreated},
		{"foto", http.StatusBadRequest}, // "foto" has no extension but is not defaulted
	}
	for _, tc := range cases {
		w := uploadImage(t, router, tc.filename, []byte("x"), true)
		assert.Equal(t, tc.want, w.Code, "filename: %s", tc.filename)
	}
}

func TestGalleryUploadRequiresMultipart(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/admin/gallery/upload", `{"file":"nope"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGalleryUploadMissingFileField(t *testing.T) {
	router, _ := setupRouter(t)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("other", "value"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/gallery/upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+testAdminToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGalleryUploadRequiresAdmin(t *testing.T) {
	router, _ := setupRouter(t)

	w := uploadImage(t, router, "foto.png", []byte("x"), false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGalleryServeMissing(t *testing.T) {
	router, _ := setupRouter(t)

	for _, path := range []string{"/img/gallery/nope.png", "/img/"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code, "path: %s", path)
	}
}

package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ristorante/storage"
)

var imageContentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
}

type GalleryController struct {
	store storage.Store
}

func NewGalleryController(store storage.Store) *GalleryController {
	return &GalleryController{store: store}
}

// Serve streams a stored image with its content type, etag and a
// one-day public cache directive.
func (g *GalleryController) Serve(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	obj, err := g.store.Get(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	defer obj.Body.Close()

	c.Header("ETag", obj.ETag)
	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj.Body, nil)
}

// Upload accepts a multipart image and stores it under a generated key.
func (g *GalleryController) Upload(c *gin.Context) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form required"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field required"})
		return
	}

	// The extension is whatever follows the last dot; a completely
	// nameless upload falls back to jpg.
	parts := strings.Split(fileHeader.Filename, ".")
	ext := strings.ToLower(parts[len(parts)-1])
	if ext == "" {
		ext = "jpg"
	}
	contentType, ok := imageContentTypes[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only jpg, jpeg, png and webp images allowed"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	defer file.Close()

	// Timestamp plus random suffix keeps keys unique without a
	// coordination step.
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	key := fmt.Sprintf("gallery/%d-%s.%s", time.Now().UnixMilli(), suffix, ext)

	if err := g.store.Put(c.Request.Context(), key, file, contentType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	c.JSON(http.StatusCreated, gin.H{
		"key": key,
		"url": fmt.Sprintf("%s://%s/img/%s", scheme, c.Request.Host, key),
	})
}

// Package storage abstracts the binary object store used for gallery
// images. Implementations can be swapped at startup; handlers only see
// the interface.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Get when no object exists under the key.
var ErrNotFound = errors.New("object not found")

// Object is a stored binary plus its metadata.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	ETag        string
	Size        int64
}

type Store interface {
	// Get opens the object stored under key.
	Get(ctx context.Context, key string) (*Object, error)
	// Put stores the object under key, overwriting any previous content.
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
}

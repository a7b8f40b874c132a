// Package storage puts listing images into object storage and hands back their public URLs.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ErrObjectNotFound is returned by readers when no object exists under a key.
var ErrObjectNotFound = errors.New("object not found")

//go:generate mockgen -destination=mocks/mock_storage.go -package=mocks . ObjectStore,ObjectReader

// ObjectStore writes publicly readable objects.
type ObjectStore interface {
	// Put stores body under key and returns the URL the object can be fetched from.
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	// Delete removes the object under key. A missing object is not an error.
	Delete(ctx context.Context, key string) error
}

// ObjectReader is implemented by stores whose objects are served by this API rather than a CDN.
type ObjectReader interface {
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
}

const listingPrefix = "listings"

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename reduces an uploaded filename to a safe ASCII base name.
// It strips directories, maps whitespace to underscores, drops other unsafe
// characters and leading dots. An empty result becomes "image".
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.TrimLeft(name, "._")
	if name == "" {
		return "image"
	}
	return name
}

// ListingImageKey returns a unique object key for an uploaded listing image.
func ListingImageKey(filename string) string {
	return path.Join(listingPrefix, uuid.NewString()+"-"+SanitizeFilename(filename))
}

// Package imagestore is the file-storage collaborator for campground photos.
// Handlers talk to the package-level Default store; tests swap it for a fake.
package imagestore

import (
	"context"
	"io"
)

// Image is what the store hands back for one uploaded file: a public URL and
// the object key needed to delete it later.
type Image struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

type Store interface {
	Upload(ctx context.Context, filename string, content io.Reader, contentType string) (Image, error)
	Delete(ctx context.Context, filename string) error
}

var Default Store

// Init sets the store used by the handlers.
func Init(store Store) {
	Default = store
}

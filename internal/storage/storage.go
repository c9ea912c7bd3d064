// Package storage persists uploaded card images and serves them back for
// vision analysis. Local disk backs development; S3 backs deployment.
package storage

import "context"

// ImageStore stores uploaded image binaries and returns browser-reachable
// URLs for them.
type ImageStore interface {
	// Put writes the image and returns its public URL and the storage key
	// the image can later be fetched by.
	Put(ctx context.Context, filename string, data []byte, contentType string) (url, key string, err error)

	// Fetch returns the stored image bytes and content type for a key
	// previously returned by Put.
	Fetch(ctx context.Context, key string) (data []byte, contentType string, err error)
}

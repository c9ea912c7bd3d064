package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes images under a directory served as static content.
// Filenames are content hashes, so re-uploading the same image is idempotent.
type LocalStore struct {
	dir       string
	urlPrefix string
}

// NewLocalStore creates the upload directory if needed. urlPrefix is the URL
// path the directory is served under, e.g. "/static/uploads".
func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir %s: %w", dir, err)
	}
	return &LocalStore{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

func (s *LocalStore) Put(_ context.Context, filename string, data []byte, contentType string) (string, string, error) {
	key := hashKey(filename, data, contentType)
	path := filepath.Join(s.dir, key)
	if _, err := os.Stat(path); err == nil {
		slog.Debug("image already stored", "key", key)
	} else if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", "", fmt.Errorf("writing image %s: %w", key, err)
	}
	return s.urlPrefix + "/" + key, key, nil
}

func (s *LocalStore) Fetch(_ context.Context, key string) ([]byte, string, error) {
	// Keys are generated by hashKey; reject anything path-like.
	if key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return nil, "", fmt.Errorf("invalid image key %q", key)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if err != nil {
		return nil, "", fmt.Errorf("reading image %s: %w", key, err)
	}
	return data, contentTypeForKey(key), nil
}

// hashKey names a stored image by its content hash plus an extension derived
// from the content type or original filename.
func hashKey(filename string, data []byte, contentType string) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:]) + extensionFor(filename, contentType)
}

func extensionFor(filename, contentType string) string {
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		// Prefer the conventional spelling for JPEG.
		for _, ext := range exts {
			if ext == ".jpg" {
				return ext
			}
		}
		return exts[0]
	}
	if ext := filepath.Ext(filename); ext != "" {
		return strings.ToLower(ext)
	}
	return ".jpg"
}

func contentTypeForKey(key string) string {
	if ct := mime.TypeByExtension(filepath.Ext(key)); ct != "" {
		return ct
	}
	return "image/jpeg"
}

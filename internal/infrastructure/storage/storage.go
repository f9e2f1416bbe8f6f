// Package storage keeps uploaded files such as avatars on an afero filesystem
// and turns their keys into public URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/spf13/afero"
)

var ErrInvalidKey = errors.New("invalid storage key")

type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader) (string, error)
	URL(key string) string
	Handler() http.Handler
}

type fileStore struct {
	fs        afero.Fs
	publicURL string
}

// NewFileStore roots the store at dir on the OS filesystem.
func NewFileStore(dir, publicURL string) (BlobStore, error) {
	if err := afero.NewOsFs().MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return NewStore(afero.NewBasePathFs(afero.NewOsFs(), dir), publicURL), nil
}

func NewStore(fs afero.Fs, publicURL string) BlobStore {
	return &fileStore{
		fs:        fs,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (s *fileStore) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	key = path.Clean("/" + key)[1:]
	if key == "" || key == "." {
		return "", ErrInvalidKey
	}

	if err := s.fs.MkdirAll(path.Dir("/"+key), 0o755); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := s.fs.Create("/" + key)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return key, nil
}

func (s *fileStore) URL(key string) string {
	if key == "" {
		return ""
	}
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key
	}
	return s.publicURL + "/" + strings.TrimLeft(key, "/")
}

// Handler serves stored files read-only.
func (s *fileStore) Handler() http.Handler {
	return http.FileServer(afero.NewHttpFs(afero.NewReadOnlyFs(s.fs)).Dir("/"))
}

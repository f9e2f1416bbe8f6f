package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_PutAndServe(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "http://localhost:8080/storage/")

	key, err := store.Put(context.Background(), "avatars/avatar-1-abc.jpg", strings.NewReader("image"))
	require.NoError(t, err)
	assert.Equal(t, "avatars/avatar-1-abc.jpg", key)

	data, err := afero.ReadFile(fs, "/avatars/avatar-1-abc.jpg")
	require.NoError(t, err)
	assert.Equal(t, "image", string(data))

	server := httptest.NewServer(store.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/avatars/avatar-1-abc.jpg")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image", string(body))
}

func TestFileStore_PutCleansTraversal(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "http://localhost:8080/storage")

	key, err := store.Put(context.Background(), "../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "etc/passwd", key)

	_, err = store.Put(context.Background(), "..", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestFileStore_URL(t *testing.T) {
	store := NewStore(afero.NewMemMapFs(), "http://localhost:8080/storage/")

	assert.Equal(t, "", store.URL(""))
	assert.Equal(t, "http://localhost:8080/storage/avatars/a.jpg", store.URL("avatars/a.jpg"))
	assert.Equal(t, "https://cdn.example.com/a.jpg", store.URL("https://cdn.example.com/a.jpg"))
}

func TestFileStore_PutHonoursCancelledContext(t *testing.T) {
	store := NewStore(afero.NewMemMapFs(), "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Put(ctx, "avatars/a.jpg", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

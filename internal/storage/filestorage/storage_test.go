package storage_test

import (
	"errors"
	"path/filepath"
	"testing"

	"giftbox/internal/storage"
	filestorage "giftbox/internal/storage/filestorage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileStorage_PublicURL(t *testing.T) {
	fs := filestorage.NewLocalFileStorage("/srv/media", "http://test.local/media/", "gift-photos")

	tests := []struct {
		name        string
		storagePath string
		want        string
	}{
		{
			name:        "plain file",
			storagePath: "07.jpg",
			want:        "http://test.local/media/gift-photos/07.jpg",
		},
		{
			name:        "nested path",
			storagePath: "videos/07.mp4",
			want:        "http://test.local/media/gift-photos/videos/07.mp4",
		},
		{
			name:        "leading slash",
			storagePath: "/07.jpg",
			want:        "http://test.local/media/gift-photos/07.jpg",
		},
		{
			name:        "spaces are escaped",
			storagePath: "beach day.jpg",
			want:        "http://test.local/media/gift-photos/beach%20day.jpg",
		},
		{
			name:        "traversal is cleaned",
			storagePath: "../../etc/passwd",
			want:        "http://test.local/media/gift-photos/etc/passwd",
		},
		{
			name:        "absolute url passes through",
			storagePath: "https://cdn.example.com/x.jpg",
			want:        "https://cdn.example.com/x.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fs.PublicURL(tt.storagePath))
		})
	}
}

func TestLocalFileStorage_PublicURL_NoBucket(t *testing.T) {
	fs := filestorage.NewLocalFileStorage("/srv/media", "http://test.local/media", "")

	assert.Equal(t, "http://test.local/media/07.jpg", fs.PublicURL("07.jpg"))
}

func TestLocalFileStorage_GetFullPath(t *testing.T) {
	dir := t.TempDir()
	fs := filestorage.NewLocalFileStorage(dir, "http://test.local", "gift-photos")

	full, err := fs.GetFullPath("videos/07.mp4")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "gift-photos", "videos", "07.mp4"), full)

	_, err = fs.GetFullPath("../secret")
	assert.True(t, errors.Is(err, storage.ErrInvalidPath))
}

func TestLocalFileStorage_Accessors(t *testing.T) {
	fs := filestorage.NewLocalFileStorage("./media", "http://test.local/", "b")

	assert.Equal(t, "./media", fs.GetBaseDir())
	assert.Equal(t, "http://test.local", fs.BaseURL())
}

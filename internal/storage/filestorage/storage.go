package storage

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"giftbox/internal/storage"
)

// URLResolver превращает storage_path в публично доступный URL.
type URLResolver interface {
	PublicURL(storagePath string) string
}

// FileStorage интерфейс для работы с файловым хранилищем медиа
type FileStorage interface {
	URLResolver
	GetFullPath(relativePath string) (string, error)
	BaseURL() string
	GetBaseDir() string
}

// LocalFileStorage реализация для локальной файловой системы.
// Файлы лежат в baseDir/bucket/<storage_path> и раздаются по baseURL.
type LocalFileStorage struct {
	baseDir string // Базовый каталог (например: "./media")
	baseURL string // Базовый URL (например: "http://localhost:8080/media")
	bucket  string
}

func NewLocalFileStorage(baseDir, baseURL, bucket string) *LocalFileStorage {
	return &LocalFileStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
		bucket:  strings.Trim(bucket, "/"),
	}
}

// PublicURL returns baseURL/bucket/storagePath with every segment escaped.
// Absolute URLs are returned unchanged.
func (s *LocalFileStorage) PublicURL(storagePath string) string {
	if u, err := url.Parse(storagePath); err == nil && u.Scheme != "" && u.Host != "" {
		return storagePath
	}

	segments := strings.Split(strings.Trim(path.Clean("/"+storagePath), "/"), "/")
	escaped := make([]string, 0, len(segments)+1)
	if s.bucket != "" {
		escaped = append(escaped, url.PathEscape(s.bucket))
	}
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		escaped = append(escaped, url.PathEscape(seg))
	}

	return s.baseURL + "/" + strings.Join(escaped, "/")
}

// GetFullPath возвращает полный путь к файлу на диске
func (s *LocalFileStorage) GetFullPath(relativePath string) (string, error) {
	cleaned := filepath.Clean("/" + relativePath)
	if strings.Contains(relativePath, "..") {
		return "", fmt.Errorf("%w: %q", storage.ErrInvalidPath, relativePath)
	}

	return filepath.Join(s.baseDir, s.bucket, cleaned), nil
}

// BaseURL возвращает базовый URL для доступа к файлам
func (s *LocalFileStorage) BaseURL() string {
	return s.baseURL
}

func (s *LocalFileStorage) GetBaseDir() string {
	return s.baseDir
}

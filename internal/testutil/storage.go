package testutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"anoa.com/marketplace/pkg/storage"
)

var (
	ErrUploadFailed = errors.New("blob store: upload failed")
	ErrDeleteFailed = errors.New("blob store: delete failed")
)

// MemoryStorage is an in-memory storage.ImageStorage with failure injection.
type MemoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	uploads int
	deleted []string

	// FailUploadAt makes the n-th upload (1-based) fail. Zero disables it.
	FailUploadAt int
	FailUploads  bool
	FailDeletes  bool
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: map[string][]byte{}}
}

func (m *MemoryStorage) UploadImage(ctx context.Context, r io.Reader, folder, key string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.uploads++
	if m.FailUploads || (m.FailUploadAt > 0 && m.uploads == m.FailUploadAt) {
		return "", ErrUploadFailed
	}

	url := fmt.Sprintf("https://blob.test/%s/%s", folder, key)
	if _, exists := m.objects[url]; exists {
		return "", fmt.Errorf("object %s already exists", url)
	}
	m.objects[url] = data
	return url, nil
}

func (m *MemoryStorage) DeleteImage(ctx context.Context, fileURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailDeletes {
		return ErrDeleteFailed
	}
	delete(m.objects, fileURL)
	m.deleted = append(m.deleted, fileURL)
	return nil
}

// URLs lists stored objects in lexical order.
func (m *MemoryStorage) URLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	urls := make([]string, 0, len(m.objects))
	for u := range m.objects {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}

func (m *MemoryStorage) Content(url string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[url]
	return b, ok
}

func (m *MemoryStorage) Deleted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}

// ImageFile builds a storage.File with image/png content.
func ImageFile(name, content string) storage.File {
	return storage.File{
		Reader:      strings.NewReader(content),
		FileName:    name,
		ContentType: "image/png",
	}
}

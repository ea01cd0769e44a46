// Package blobstore stores question screenshot attachments. It defines the
// Store interface, a local-disk implementation used by the server, and an
// in-memory implementation for tests.
package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("screenshot not found")
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
	ErrMissingFileName = errors.New("file name is required")
	ErrInvalidFileType = errors.New("file type is not allowed")
)

// MaxFileSize is the maximum allowed screenshot size in bytes (10 MB).
const MaxFileSize = 10 * 1024 * 1024

// allowedExtensions lists accepted screenshot file extensions.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".pdf":  true,
}

// Store is the contract for screenshot storage backends. Store returns the
// path under which the content was saved; that path is what gets persisted
// on the question row.
type Store interface {
	Store(ctx context.Context, name string, content io.Reader) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

func validateName(name string) error {
	if name == "" {
		return ErrMissingFileName
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return fmt.Errorf("%w: %s", ErrInvalidFileType, ext)
	}
	return nil
}

// readCapped reads content enforcing MaxFileSize.
func readCapped(content io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(content, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	if int64(len(data)) > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}

// storedName prefixes the original file name with a fresh UUID so uploads
// with the same name never collide.
func storedName(name string) string {
	return uuid.New().String() + "_" + filepath.Base(name)
}

// ---------------------------------------------------------------------------
// Local-disk implementation
// ---------------------------------------------------------------------------

// DiskStore writes screenshots under a root directory.
type DiskStore struct {
	root string
}

// NewDiskStore creates a DiskStore rooted at dir, creating it if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &DiskStore{root: dir}, nil
}

func (s *DiskStore) Store(_ context.Context, name string, content io.Reader) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	data, err := readCapped(content)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.root, storedName(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}
	return path, nil
}

func (s *DiskStore) Open(_ context.Context, path string) (io.ReadCloser, error) {
	// Refuse paths outside the store root.
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, ErrNotFound
	}
	root, err := filepath.Abs(s.root)
	if err != nil {
		return nil, ErrNotFound
	}
	if !strings.HasPrefix(abs, root+string(os.PathSeparator)) {
		return nil, ErrNotFound
	}

	f, err := os.Open(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *DiskStore) Delete(_ context.Context, path string) error {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// In-memory implementation
// ---------------------------------------------------------------------------

// MemStore is a thread-safe, in-memory Store for testing.
type MemStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemStore returns a ready-to-use MemStore.
func NewMemStore() *MemStore {
	return &MemStore{blobs: make(map[string][]byte)}
}

func (s *MemStore) Store(_ context.Context, name string, content io.Reader) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	data, err := readCapped(content)
	if err != nil {
		return "", err
	}

	path := "mem://" + storedName(name)
	s.mu.Lock()
	s.blobs[path] = data
	s.mu.Unlock()
	return path, nil
}

func (s *MemStore) Open(_ context.Context, path string) (io.ReadCloser, error) {
	s.mu.RLock()
	data, ok := s.blobs[path]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *MemStore) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[path]; !ok {
		return ErrNotFound
	}
	delete(s.blobs, path)
	return nil
}

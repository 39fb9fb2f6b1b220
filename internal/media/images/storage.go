// Package images loads, composites, fingerprints, and stores generated artwork.
package images

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	domainerrors "github.com/listenupapp/traitmint/internal/errors"
)

// Storage manages one output directory of files named {id}{ext}.
// Used for composite images and for metadata records.
type Storage struct {
	basePath string
	ext      string
	mu       sync.RWMutex // Protects file operations
}

// NewStorage creates a Storage for {basePath}/{subdir}/{id}{ext},
// creating the directory if it doesn't exist.
// Example: NewStorage("/out", "images", ".png") -> /out/images/1.png.
func NewStorage(basePath, subdir, ext string) (*Storage, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}
	if subdir == "" {
		return nil, fmt.Errorf("subdirectory cannot be empty")
	}

	storagePath := filepath.Join(basePath, subdir)

	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return nil, domainerrors.Wrapf(err, domainerrors.CodeStorage, "create %s directory", subdir)
	}

	return &Storage{
		basePath: storagePath,
		ext:      ext,
	}, nil
}

// Save writes data for an id, replacing any previous file.
func (s *Storage) Save(id string, data []byte) error {
	if id == "" {
		return fmt.Errorf("ID cannot be empty")
	}
	if len(data) == 0 {
		return fmt.Errorf("data cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.Path(id), data, 0o644); err != nil {
		return domainerrors.Wrapf(err, domainerrors.CodeStorage, "write %s", s.Path(id))
	}

	return nil
}

// SavePNG encodes img as PNG and saves it for an id.
func (s *Storage) SavePNG(id string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return domainerrors.Wrapf(err, domainerrors.CodeInternal, "encode png for %s", id)
	}
	return s.Save(id, buf.Bytes())
}

// Get reads the file for an id.
func (s *Storage) Get(id string) ([]byte, error) {
	if id == "" {
		return nil, fmt.Errorf("ID cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.Path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domainerrors.Wrapf(err, domainerrors.CodeNotFound, "no file for %s", id)
		}
		return nil, domainerrors.Wrapf(err, domainerrors.CodeStorage, "read %s", s.Path(id))
	}

	return data, nil
}

// Exists checks if a file exists for an id.
func (s *Storage) Exists(id string) bool {
	if id == "" {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.Path(id))
	return err == nil
}

// Hash computes the SHA256 of the stored file for an id, hex-encoded.
func (s *Storage) Hash(id string) (string, error) {
	data, err := s.Get(id)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash), nil
}

// Dir returns the directory files are written to.
func (s *Storage) Dir() string {
	return s.basePath
}

// Path returns the full filesystem path for an id.
func (s *Storage) Path(id string) string {
	return filepath.Join(s.basePath, id+s.ext)
}

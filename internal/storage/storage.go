// Package storage persists uploaded images on the local filesystem under
// a single root directory, keyed by generated names.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyFile       = errors.New("arquivo vazio")
	ErrNotAnImage      = errors.New("apenas imagens são permitidas")
	ErrInvalidFilename = errors.New("nome de arquivo inválido")
)

// ImageStore reads and writes image blobs inside root. File names are
// generated (uuid + original extension) so they cannot collide or be
// guessed from the upload name.
type ImageStore struct {
	root string
}

func NewImageStore(root string) (*ImageStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("filepath.Abs -> %w", err)
	}

	if err = os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll -> %w", err)
	}

	return &ImageStore{root: abs}, nil
}

// Store writes data under a generated name and returns that name.
// The declared content type must be an image type.
func (s *ImageStore) Store(data []byte, originalName, contentType string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}

	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotAnImage
	}

	filename := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))

	dest, err := s.resolve(filename)
	if err != nil {
		return "", err
	}

	if err = os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("os.WriteFile -> %w", err)
	}

	return filename, nil
}

// Path returns the absolute path of a stored file. It fails when the
// name would resolve outside the root or the file does not exist.
func (s *ImageStore) Path(filename string) (string, error) {
	p, err := s.resolve(filename)
	if err != nil {
		return "", err
	}

	if _, err = os.Stat(p); err != nil {
		return "", fmt.Errorf("os.Stat -> %w", err)
	}

	return p, nil
}

// Delete removes a stored file. Deleting a file that does not exist is
// not an error.
func (s *ImageStore) Delete(filename string) error {
	if filename == "" {
		return nil
	}

	p, err := s.resolve(filename)
	if err != nil {
		return err
	}

	if err = os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("os.Remove -> %w", err)
	}

	return nil
}

// resolve joins filename to the root and rejects anything that would
// escape it (e.g. "../../etc/passwd").
func (s *ImageStore) resolve(filename string) (string, error) {
	p := filepath.Join(s.root, filepath.Clean("/"+filename))
	if filepath.Dir(p) != s.root {
		return "", ErrInvalidFilename
	}

	return p, nil
}

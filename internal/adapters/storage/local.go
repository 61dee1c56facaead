package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"weddingplanner/internal/domain"
)

// photoSubdir is the folder under the uploads root where event photos live.
// It is also the public path segment the router serves files from.
const photoSubdir = "eventPhotos"

type localFileStore struct {
	rootDir string
	baseURL string
}

// NewLocalFileStore returns a PhotoFileStore that writes files under
// rootDir/eventPhotos and builds public URLs from baseURL.
func NewLocalFileStore(rootDir, baseURL string) (domain.PhotoFileStore, error) {
	dir := filepath.Join(rootDir, photoSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &localFileStore{
		rootDir: rootDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *localFileStore) Save(filename string, content io.Reader) (string, string, error) {
	name, err := uniqueName(filename)
	if err != nil {
		return "", "", err
	}
	path := filepath.Join(s.rootDir, photoSubdir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(path)
		return "", "", fmt.Errorf("failed to write file: %w", err)
	}

	url := fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, photoSubdir, name)
	return url, path, nil
}

func (s *localFileStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// uniqueName prefixes the sanitized original filename with random hex so
// repeated uploads of the same file never collide.
func uniqueName(filename string) (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate file name: %w", err)
	}
	base := filepath.Base(filename)
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	return hex.EncodeToString(buf) + "-" + base, nil
}

package filestore

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("file not found")

// Store is a blob store keyed by sanitized filename on the local filesystem.
// Saving under an existing name overwrites the previous blob.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating store directory")
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Save(name string, r io.Reader) (string, error) {
	name = SanitizeFilename(name)
	if name == "" {
		return "", errors.New("empty filename")
	}
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", errors.Wrap(err, "creating file")
	}
	defer func() { _ = f.Close() }()

	if _, err = io.Copy(f, r); err != nil {
		return "", errors.Wrap(err, "writing file")
	}
	return name, nil
}

func (s *Store) Open(name string) (*os.File, error) {
	f, err := os.Open(filepath.Join(s.dir, SanitizeFilename(name)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "opening file")
	}
	return f, nil
}

func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, SanitizeFilename(name))
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename flattens a client-provided filename to a safe basename:
// path separators are dropped and anything outside [A-Za-z0-9_.-] becomes
// an underscore.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeChars.ReplaceAllString(name, "_")
	return strings.Trim(name, "._")
}

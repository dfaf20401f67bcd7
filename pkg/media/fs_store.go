package media

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// FSStore stores media files under a root directory and serves them from a
// base URL (nginx or a CDN in front of the media dir in production).
type FSStore struct {
	root    string
	baseURL string
}

func NewFSStore(root, baseURL string) *FSStore {
	return &FSStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *FSStore) Save(key string, r io.Reader) (string, error) {
	key = cleanKey(key)
	path := filepath.Join(s.root, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.Wrapf(err, "creating media dir for %s", key)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "creating media file %s", key)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", errors.Wrapf(err, "writing media file %s", key)
	}

	return key, nil
}

func (s *FSStore) URL(key string) (string, error) {
	key = cleanKey(key)
	if !s.Exists(key) {
		return "", errors.Errorf("no such media file: %s", key)
	}
	return s.baseURL + "/" + key, nil
}

func (s *FSStore) Delete(key string) error {
	key = cleanKey(key)
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "deleting media file %s", key)
	}
	return nil
}

func (s *FSStore) Exists(key string) bool {
	_, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(cleanKey(key))))
	return err == nil
}

// cleanKey normalizes a key and strips any attempt to climb out of the
// media root.
func cleanKey(key string) string {
	key = strings.TrimLeft(filepath.ToSlash(key), "/")
	parts := strings.Split(key, "/")
	var kept []string
	for _, part := range parts {
		if part == ".." || part == "." || part == "" {
			continue
		}
		kept = append(kept, part)
	}
	return strings.Join(kept, "/")
}

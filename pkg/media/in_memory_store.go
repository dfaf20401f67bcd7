package media

import (
	"io"

	"github.com/pkg/errors"
)

// InMemoryStore is the test double for Store.
type InMemoryStore struct {
	baseURL string
	files   map[string][]byte
}

func NewInMemoryStore(baseURL string) *InMemoryStore {
	return &InMemoryStore{baseURL: baseURL, files: make(map[string][]byte)}
}

func (s *InMemoryStore) Save(key string, r io.Reader) (string, error) {
	key = cleanKey(key)
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.files[key] = b
	return key, nil
}

func (s *InMemoryStore) URL(key string) (string, error) {
	key = cleanKey(key)
	if _, ok := s.files[key]; !ok {
		return "", errors.Errorf("no such media file: %s", key)
	}
	return s.baseURL + "/" + key, nil
}

func (s *InMemoryStore) Delete(key string) error {
	delete(s.files, cleanKey(key))
	return nil
}

func (s *InMemoryStore) Exists(key string) bool {
	_, ok := s.files[cleanKey(key)]
	return ok
}

// Contents returns a stored blob, for test assertions.
func (s *InMemoryStore) Contents(key string) []byte {
	return s.files[cleanKey(key)]
}

// Package media abstracts where uploaded images and generated PDF
// artifacts live. The public site only ever needs to save a blob, turn a
// stored key into a URL, and delete a superseded artifact.
package media

import "io"

type Store interface {
	// Save writes the blob under key and returns the key actually used.
	Save(key string, r io.Reader) (string, error)
	// URL maps a stored key to the URL it is served from.
	URL(key string) (string, error)
	Delete(key string) error
	Exists(key string) bool
}

package relimg

import (
	"strings"
	"testing"

	"github.com/astroedu/astroedu/pkg/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRewriterFixture(t *testing.T, files ...string) *Rewriter {
	store := media.NewInMemoryStore("https://media.test")
	for _, f := range files {
		_, err := store.Save(f, strings.NewReader("image-bytes"))
		require.NoError(t, err)
	}
	return NewRewriter(store, []string{"cdn.example.org"}, []string{"http://astroedu.iau.org/", "https://astroedu.iau.org/"})
}

func TestRewriteResolvesStoredImages(t *testing.T) {
	rw := newRewriterFixture(t, "activities/attach/1101/moon.jpg")

	tests := []struct {
		name string
		src  string
	}{
		{"relative media path", "media/activities/attach/1101/moon.jpg"},
		{"rooted media path", "/media/activities/attach/1101/moon.jpg"},
		{"absolute site url", "http://astroedu.iau.org/media/activities/attach/1101/moon.jpg"},
		{"bare store key", "activities/attach/1101/moon.jpg"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			html := `<p>before</p><img alt="moon" src="` + test.src + `" width="200"><p>after</p>`
			got := rw.Rewrite(html)
			assert.Equal(t, `<p>before</p><img src="https://media.test/activities/attach/1101/moon.jpg"/><p>after</p>`, got)
		})
	}
}

func TestRewritePassesTrustedHostsThrough(t *testing.T) {
	rw := newRewriterFixture(t)

	html := `<img src="https://cdn.example.org/shared/logo.png">`
	assert.Equal(t, `<img src="https://cdn.example.org/shared/logo.png"/>`, rw.Rewrite(html))
}

func TestRewriteSubstitutesPlaceholderOnMissingImage(t *testing.T) {
	rw := newRewriterFixture(t)

	html := `<img src="media/activities/attach/1101/gone.jpg">`
	assert.Equal(t, `<img src="`+PlaceholderURL+`"/>`, rw.Rewrite(html))
}

func TestRewriteHandlesMultipleImages(t *testing.T) {
	rw := newRewriterFixture(t, "a.png")

	html := `<img src="media/a.png"> middle <img src="media/missing.png">`
	got := rw.Rewrite(html)
	assert.Equal(t, `<img src="https://media.test/a.png"/> middle <img src="`+PlaceholderURL+`"/>`, got)
}

func TestRewriteLeavesImagelessHTMLAlone(t *testing.T) {
	rw := newRewriterFixture(t)

	html := `<p>no images here</p>`
	assert.Equal(t, html, rw.Rewrite(html))
}

// Package relimg rewrites image sources in activity body HTML so that
// images uploaded alongside an activity resolve through the media store,
// regardless of which absolute or relative form the author pasted in.
package relimg

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/astroedu/astroedu/pkg/media"
)

// PlaceholderURL is substituted for any image source the media store
// cannot resolve.
const PlaceholderURL = "https://via.placeholder.com/200x200?text=No+Image"

var imgTagRE = regexp.MustCompile(`<img\b[^>]*?src="([^"]*)"[^>]*?>`)

// Rewriter resolves img tags against a media store. Sources whose host is
// on the trusted list pass through unchanged; every other source has the
// site and media prefixes stripped and the remainder is looked up in the
// store.
type Rewriter struct {
	store        media.Store
	trustedHosts map[string]bool
	sitePrefixes []string
}

func NewRewriter(store media.Store, trustedHosts []string, sitePrefixes []string) *Rewriter {
	hosts := make(map[string]bool)
	for _, h := range trustedHosts {
		hosts[h] = true
	}
	return &Rewriter{store: store, trustedHosts: hosts, sitePrefixes: sitePrefixes}
}

// Rewrite replaces every img tag in the HTML with a normalized
// <img src="..."/> whose source has been resolved. Text outside img tags
// is left untouched.
func (rw *Rewriter) Rewrite(html string) string {
	return imgTagRE.ReplaceAllStringFunc(html, func(tag string) string {
		src := imgTagRE.FindStringSubmatch(tag)[1]
		return fmt.Sprintf(`<img src="%s"/>`, rw.resolve(src))
	})
}

func (rw *Rewriter) resolve(src string) string {
	if u, err := url.Parse(src); err == nil && u.Host != "" && rw.trustedHosts[u.Host] {
		return src
	}

	key := src
	for _, prefix := range rw.sitePrefixes {
		key = strings.TrimPrefix(key, prefix)
	}
	key = strings.TrimPrefix(key, "/")
	key = strings.TrimPrefix(key, "media/")

	resolved, err := rw.store.URL(key)
	if err != nil {
		return PlaceholderURL
	}
	return resolved
}

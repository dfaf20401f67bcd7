package webapi

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/astroedu/astroedu/pkg/aedb/stor"
	"github.com/astroedu/astroedu/pkg/visibility"
	"github.com/labstack/echo/v4"
)

const (
	activityPriority   = "0.7"
	collectionPriority = "0.6"

	sitemapPageSize = 500
)

type SitemapController struct {
	activityStor   stor.ActivityStor
	collectionStor stor.CollectionStor
	siteURL        string
	now            func() time.Time
}

func NewSitemapController(activityStor stor.ActivityStor, collectionStor stor.CollectionStor, siteURL string) *SitemapController {
	return &SitemapController{
		activityStor:   activityStor,
		collectionStor: collectionStor,
		siteURL:        siteURL,
		now:            time.Now,
	}
}

type sitemapURL struct {
	XMLName  xml.Name `xml:"url"`
	Loc      string   `xml:"loc"`
	LastMod  string   `xml:"lastmod,omitempty"`
	Priority string   `xml:"priority"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap serves sitemap.xml with every publicly visible activity and
// collection.
func (c *SitemapController) Sitemap(ctx echo.Context) error {
	now := c.now()
	urlset := sitemapURLSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}

	for page := 1; ; page++ {
		listing, err := c.activityStor.ListActivities(stor.ActivityListParams{
			Viewer:   visibility.Anonymous,
			Now:      now,
			Page:     page,
			PageSize: sitemapPageSize,
		})
		if err != nil {
			return err
		}

		for i := range listing.Items {
			item := &listing.Items[i]
			urlset.URLs = append(urlset.URLs, sitemapURL{
				Loc:      c.siteURL + item.Activity.CanonicalPath(&item.Translation),
				LastMod:  lastMod(item.Activity.ReleaseDate, item.Activity.UpdatedAt),
				Priority: activityPriority,
			})
		}

		if page >= listing.PageCount {
			break
		}
	}

	collections, err := c.collectionStor.ListCollections(visibility.Anonymous, now)
	if err != nil {
		return err
	}

	for i := range collections {
		urlset.URLs = append(urlset.URLs, sitemapURL{
			Loc:      c.siteURL + collections[i].CanonicalPath(),
			LastMod:  lastMod(collections[i].ReleaseDate, collections[i].UpdatedAt),
			Priority: collectionPriority,
		})
	}

	body, err := xml.MarshalIndent(urlset, "", "  ")
	if err != nil {
		return err
	}

	return ctx.Blob(http.StatusOK, echo.MIMEApplicationXMLCharsetUTF8, append([]byte(xml.Header), body...))
}

func lastMod(releaseDate *time.Time, updatedAt time.Time) string {
	t := updatedAt
	if releaseDate != nil && releaseDate.After(t) {
		t = *releaseDate
	}
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

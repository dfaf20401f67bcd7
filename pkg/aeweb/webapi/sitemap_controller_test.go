package webapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/astroedu/astroedu/pkg/aedb/aemodel"
	"github.com/astroedu/astroedu/pkg/aedb/stor"
	"github.com/astroedu/astroedu/pkg/visibility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemap(t *testing.T) {
	activities := testActivities()
	collections := []aemodel.Collection{
		{ID: 1, Slug: "solar-system", Title: "Solar System", Published: true, ReleaseDate: datePtr(2023, 2, 1)},
		{ID: 2, Slug: "unreleased", Title: "Unreleased", Published: false},
	}

	controller := NewSitemapController(
		stor.NewInMemoryActivityStor(activities),
		stor.NewInMemoryCollectionStor(collections),
		"https://astroedu.test")
	controller.now = func() time.Time { return testNow }

	ctx, rec := setupContext(http.MethodGet, "/sitemap.xml", visibility.Anonymous)

	require.NoError(t, controller.Sitemap(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "<loc>https://astroedu.test/activities/1101/sun-spotting/</loc>")
	assert.Contains(t, body, "<loc>https://astroedu.test/collections/solar-system/</loc>")
	assert.Contains(t, body, "<priority>0.7</priority>")
	assert.Contains(t, body, "<priority>0.6</priority>")
	// Drafts and unreleased collections stay out of the sitemap.
	assert.NotContains(t, body, "1303")
	assert.NotContains(t, body, "unreleased")
}

package webapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/astroedu/astroedu/pkg/aedb/aemodel"
	"github.com/astroedu/astroedu/pkg/aedb/stor"
	"github.com/astroedu/astroedu/pkg/media"
	"github.com/astroedu/astroedu/pkg/relimg"
	"github.com/astroedu/astroedu/pkg/visibility"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)

func datePtr(year, month, day int) *time.Time {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &d
}

// setupContext creates a test echo context for the given target URL.
func setupContext(method, target string, viewer visibility.Viewer) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("Viewer", viewer)
	return c, rec
}

func testActivities() []aemodel.Activity {
	return []aemodel.Activity{
		{
			ID:          1,
			Code:        "1101",
			Published:   true,
			ReleaseDate: datePtr(2023, 1, 1),
			Space:       true,
			Authors:     []aemodel.AuthorInstitution{{Author: "Ada"}},
			Translations: []aemodel.ActivityTranslation{
				{ID: 10, ActivityID: 1, LanguageCode: "en", Title: "Sun Spotting", Slug: "sun-spotting", Teaser: "Watch the sun", Published: true},
				{ID: 11, ActivityID: 1, LanguageCode: "fr", Title: "Observer le soleil", Slug: "observer-le-soleil", Published: true},
			},
		},
		{
			ID:          2,
			Code:        "1202",
			Published:   true,
			ReleaseDate: datePtr(2023, 3, 1),
			Earth:       true,
			Translations: []aemodel.ActivityTranslation{
				{ID: 20, ActivityID: 2, LanguageCode: "en", Title: "Rock Hunt", Slug: "rock-hunt", Published: true},
			},
		},
		{
			// Draft, only staff can see it.
			ID:   3,
			Code: "1303",
			Translations: []aemodel.ActivityTranslation{
				{ID: 30, ActivityID: 3, LanguageCode: "en", Title: "Hidden", Slug: "hidden", Published: true},
			},
		},
	}
}

func testLevelOptions() []aemodel.MetadataOption {
	return []aemodel.MetadataOption{
		{ID: 1, Group: aemodel.MetadataGroupLevel, Code: "beginner", Title: "Beginner", Position: 1},
		{ID: 2, Group: aemodel.MetadataGroupLevel, Code: "advanced", Title: "Advanced", Position: 2},
		{ID: 3, Group: aemodel.MetadataGroupAge, Code: "6-8", Title: "6-8 years", Position: 1},
	}
}

func newActivityControllerFixture(activities []aemodel.Activity) *ActivityController {
	store := media.NewInMemoryStore("https://media.test")
	controller := NewActivityController(
		stor.NewInMemoryActivityStor(activities),
		stor.NewInMemoryMetadataOptionStor(testLevelOptions()),
		relimg.NewRewriter(store, nil, nil))
	controller.now = func() time.Time { return testNow }
	return controller
}

func TestListActivities(t *testing.T) {
	controller := newActivityControllerFixture(testActivities())

	t.Run("AnonymousSeesOnlyReleased", func(t *testing.T) {
		ctx, rec := setupContext(http.MethodGet, "/activities/", visibility.Anonymous)

		require.NoError(t, controller.ListActivities(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)

		var page stor.ActivityPage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		require.Len(t, page.Items, 2)
		assert.Equal(t, "1202", page.Items[0].Activity.Code)
		assert.Equal(t, "1101", page.Items[1].Activity.Code)
	})

	t.Run("StaffSeesDrafts", func(t *testing.T) {
		ctx, rec := setupContext(http.MethodGet, "/activities/", visibility.StaffViewer)

		require.NoError(t, controller.ListActivities(ctx))

		var page stor.ActivityPage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.Equal(t, 3, page.TotalCount)
	})

	t.Run("CategoryFacet", func(t *testing.T) {
		ctx, rec := setupContext(http.MethodGet, "/activities/category/space/", visibility.Anonymous)
		ctx.SetParamNames("category")
		ctx.SetParamValues("space")

		require.NoError(t, controller.ListActivities(ctx))

		var page stor.ActivityPage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		require.Len(t, page.Items, 1)
		assert.Equal(t, "1101", page.Items[0].Activity.Code)
	})

	t.Run("UnknownCategoryIs400", func(t *testing.T) {
		ctx, _ := setupContext(http.MethodGet, "/activities/category/ocean/", visibility.Anonymous)
		ctx.SetParamNames("category")
		ctx.SetParamValues("ocean")

		err := controller.ListActivities(ctx)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("CarriesLevelOptionsForFacetControls", func(t *testing.T) {
		ctx, rec := setupContext(http.MethodGet, "/activities/", visibility.Anonymous)

		require.NoError(t, controller.ListActivities(ctx))

		var page stor.ActivityPage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		require.Len(t, page.Levels, 2)
		assert.Equal(t, "beginner", page.Levels[0].Code)
		assert.Equal(t, "advanced", page.Levels[1].Code)
	})

	t.Run("LanguageSelectsTranslation", func(t *testing.T) {
		ctx, rec := setupContext(http.MethodGet, "/activities/?lang=fr", visibility.Anonymous)

		require.NoError(t, controller.ListActivities(ctx))

		var page stor.ActivityPage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		require.Len(t, page.Items, 2)
		// 1202 has no French, the listing falls back to English.
		assert.Equal(t, "en", page.Items[0].Translation.LanguageCode)
		assert.Equal(t, "fr", page.Items[1].Translation.LanguageCode)
	})
}

func TestFeaturedActivities(t *testing.T) {
	var activities []aemodel.Activity
	for i := 1; i <= 4; i++ {
		activities = append(activities, aemodel.Activity{
			ID:          i,
			Code:        fmt.Sprintf("12%02d", i),
			Published:   true,
			Featured:    true,
			ReleaseDate: datePtr(2023, 1, i),
			Translations: []aemodel.ActivityTranslation{
				{ID: i * 10, ActivityID: i, LanguageCode: "en", Title: fmt.Sprintf("Featured %d", i), Slug: fmt.Sprintf("featured-%d", i), Published: true},
			},
		})
	}
	controller := newActivityControllerFixture(activities)

	ctx, rec := setupContext(http.MethodGet, "/activities/featured/", visibility.Anonymous)

	require.NoError(t, controller.FeaturedActivities(ctx))

	var listings []stor.ActivityListing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listings))
	// The home page highlights the three most recent featured activities.
	require.Len(t, listings, 3)
	assert.Equal(t, "1204", listings[0].Activity.Code)
	assert.Equal(t, "1202", listings[2].Activity.Code)
}

func TestGetActivity(t *testing.T) {
	controller := newActivityControllerFixture(testActivities())

	t.Run("CanonicalURL", func(t *testing.T) {
		ctx, rec := setupContext(http.MethodGet, "/activities/1101/sun-spotting/", visibility.Anonymous)
		ctx.SetParamNames("code", "slug")
		ctx.SetParamValues("1101", "sun-spotting")

		require.NoError(t, controller.GetActivity(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp ActivityResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Sun Spotting", resp.Translation.Title)
		assert.Equal(t, []string{"en", "fr"}, resp.Languages)
		assert.Equal(t, "/activities/1101/sun-spotting/", resp.CanonicalPath)
	})

	t.Run("StaleSlugRedirects", func(t *testing.T) {
		ctx, rec := setupContext(http.MethodGet, "/activities/1101/old-slug/", visibility.Anonymous)
		ctx.SetParamNames("code", "slug")
		ctx.SetParamValues("1101", "old-slug")

		require.NoError(t, controller.GetActivity(ctx))
		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "/activities/1101/sun-spotting/", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("DraftIs404ForAnonymous", func(t *testing.T) {
		ctx, _ := setupContext(http.MethodGet, "/activities/1303/hidden/", visibility.Anonymous)
		ctx.SetParamNames("code", "slug")
		ctx.SetParamValues("1303", "hidden")

		assert.ErrorIs(t, controller.GetActivity(ctx), echo.ErrNotFound)
	})

	t.Run("DraftVisibleToStaff", func(t *testing.T) {
		ctx, rec := setupContext(http.MethodGet, "/activities/1303/hidden/", visibility.StaffViewer)
		ctx.SetParamNames("code", "slug")
		ctx.SetParamValues("1303", "hidden")

		require.NoError(t, controller.GetActivity(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("NoDefaultLanguageFallbackFor404", func(t *testing.T) {
		// Detail views fall back to the default language only; a request
		// for German renders the English translation.
		ctx, rec := setupContext(http.MethodGet, "/activities/1101/sun-spotting/?lang=de", visibility.Anonymous)
		ctx.SetParamNames("code", "slug")
		ctx.SetParamValues("1101", "sun-spotting")

		require.NoError(t, controller.GetActivity(ctx))

		var resp ActivityResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "en", resp.Translation.LanguageCode)
	})
}

func TestResolveActivity(t *testing.T) {
	controller := newActivityControllerFixture(testActivities())

	t.Run("BareCodeRedirects", func(t *testing.T) {
		ctx, rec := setupContext(http.MethodGet, "/activities/1101/", visibility.Anonymous)
		ctx.SetParamNames("code")
		ctx.SetParamValues("1101")

		require.NoError(t, controller.ResolveActivity(ctx))
		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "/activities/1101/sun-spotting/", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("LegacySlugRedirects", func(t *testing.T) {
		ctx, rec := setupContext(http.MethodGet, "/sun-spotting/", visibility.Anonymous)
		ctx.SetParamNames("slug")
		ctx.SetParamValues("sun-spotting")

		require.NoError(t, controller.ResolveLegacySlug(ctx))
		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "/activities/1101/sun-spotting/", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("UnknownCodeIs404", func(t *testing.T) {
		ctx, _ := setupContext(http.MethodGet, "/activities/9999/", visibility.Anonymous)
		ctx.SetParamNames("code")
		ctx.SetParamValues("9999")

		assert.ErrorIs(t, controller.ResolveActivity(ctx), echo.ErrNotFound)
	})
}

func TestPrintPreviews(t *testing.T) {
	activities := testActivities()
	activities[0].Translations[0].FullDesc = `<p>Step one</p><img src="media/steps/one.jpg">`

	controller := newActivityControllerFixture(activities)

	t.Run("FirstPageCarriesTitleAndAuthors", func(t *testing.T) {
		ctx, rec := setupContext(http.MethodGet, "/activities/1101/first-page-print-preview/", visibility.Anonymous)
		ctx.SetParamNames("code")
		ctx.SetParamValues("1101")

		require.NoError(t, controller.FirstPagePrintPreview(ctx))
		assert.Contains(t, rec.Body.String(), "<h1>Sun Spotting</h1>")
		assert.Contains(t, rec.Body.String(), "Ada")
	})

	t.Run("ContentRewritesUnknownImagesToPlaceholder", func(t *testing.T) {
		ctx, rec := setupContext(http.MethodGet, "/activities/1101/content-print-preview/", visibility.Anonymous)
		ctx.SetParamNames("code")
		ctx.SetParamValues("1101")

		require.NoError(t, controller.ContentPrintPreview(ctx))
		assert.Contains(t, rec.Body.String(), "<h2>Description</h2>")
		assert.Contains(t, rec.Body.String(), relimg.PlaceholderURL)
	})

	t.Run("FullPreviewCombinesCoverAndContent", func(t *testing.T) {
		ctx, rec := setupContext(http.MethodGet, "/activities/1101/print-preview/", visibility.Anonymous)
		ctx.SetParamNames("code")
		ctx.SetParamValues("1101")

		require.NoError(t, controller.PrintPreview(ctx))
		body := rec.Body.String()
		assert.Contains(t, body, "<h1>Sun Spotting</h1>")
		assert.Contains(t, body, "Ada")
		assert.Contains(t, body, "<h2>Description</h2>")
		assert.Less(t, strings.Index(body, "<h1>"), strings.Index(body, "<h2>"))
	})
}

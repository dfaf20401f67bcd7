package webapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/astroedu/astroedu/pkg/aedb/aemodel"
	"github.com/astroedu/astroedu/pkg/aedb/stor"
	"github.com/astroedu/astroedu/pkg/aeweb/webapi/apimiddleware"
	"github.com/astroedu/astroedu/pkg/relimg"
	"github.com/astroedu/astroedu/pkg/visibility"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const featuredCount = 3

type ActivityController struct {
	activityStor       stor.ActivityStor
	metadataOptionStor stor.MetadataOptionStor
	rewriter           *relimg.Rewriter
	now                func() time.Time
}

func NewActivityController(activityStor stor.ActivityStor, metadataOptionStor stor.MetadataOptionStor, rewriter *relimg.Rewriter) *ActivityController {
	return &ActivityController{
		activityStor:       activityStor,
		metadataOptionStor: metadataOptionStor,
		rewriter:           rewriter,
		now:                time.Now,
	}
}

// ListActivities serves /activities/ and /activities/category/:category/.
// Facets level, age and the browsing language come in as query params.
func (c *ActivityController) ListActivities(ctx echo.Context) error {
	params := stor.ActivityListParams{
		Viewer:    apimiddleware.GetViewer(ctx),
		Now:       c.now(),
		Lang:      requestLanguage(ctx),
		Category:  ctx.Param("category"),
		LevelCode: ctx.QueryParam("level"),
		AgeCode:   ctx.QueryParam("age"),
		Page:      queryInt(ctx, "page"),
	}

	if err := params.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	page, err := c.activityStor.ListActivities(params)
	if err != nil {
		return err
	}

	// The level vocabulary rides along so the page can render the facet
	// filter controls.
	if page.Levels, err = c.metadataOptionStor.ListOptionsByGroup(aemodel.MetadataGroupLevel); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, page)
}

// FeaturedActivities serves the activities highlighted on the home page.
func (c *ActivityController) FeaturedActivities(ctx echo.Context) error {
	activities, err := c.activityStor.FeaturedActivities(featuredCount, c.now())
	if err != nil {
		return err
	}

	lang := requestLanguage(ctx)
	now := c.now()

	var listings []stor.ActivityListing
	for i := range activities {
		tr := visibility.TranslationForLanguage(&activities[i], lang, now, true)
		if tr == nil {
			continue
		}
		listings = append(listings, stor.ActivityListing{Activity: activities[i], Translation: *tr})
	}

	return ctx.JSON(http.StatusOK, listings)
}

// ActivityResponse is the detail view shape.
type ActivityResponse struct {
	Activity      aemodel.Activity            `json:"activity"`
	Translation   aemodel.ActivityTranslation `json:"translation"`
	Languages     []string                    `json:"languages"`
	CanonicalPath string                      `json:"canonical_path"`
}

// GetActivity serves the canonical detail URL /activities/:code/:slug/.
// A stale slug permanently redirects to the canonical one.
func (c *ActivityController) GetActivity(ctx echo.Context) error {
	activity, tr, err := c.detailLookup(ctx)
	if err != nil {
		return err
	}

	if tr.Slug != ctx.Param("slug") {
		return ctx.Redirect(http.StatusMovedPermanently, activity.CanonicalPath(tr))
	}

	return ctx.JSON(http.StatusOK, &ActivityResponse{
		Activity:      *activity,
		Translation:   *tr,
		Languages:     activeLanguages(activity, c.now()),
		CanonicalPath: activity.CanonicalPath(tr),
	})
}

// ResolveActivity serves bare /activities/:code/ addresses with a 301 to
// the canonical URL. Nothing ever renders at the bare address.
func (c *ActivityController) ResolveActivity(ctx echo.Context) error {
	activity, tr, err := c.detailLookup(ctx)
	if err != nil {
		return err
	}

	return ctx.Redirect(http.StatusMovedPermanently, activity.CanonicalPath(tr))
}

// ResolveLegacySlug serves old /:slug/ addresses that predate codes in
// activity URLs.
func (c *ActivityController) ResolveLegacySlug(ctx echo.Context) error {
	activity, err := c.activityStor.GetActivityByTranslationSlug(ctx.Param("slug"), apimiddleware.GetViewer(ctx), c.now())
	if err != nil {
		return notFoundOr(err)
	}

	tr := visibility.DetailTranslation(activity, requestLanguage(ctx), c.now())
	if tr == nil {
		return echo.ErrNotFound
	}

	return ctx.Redirect(http.StatusMovedPermanently, activity.CanonicalPath(tr))
}

// FirstPagePrintPreview renders the HTML the PDF service uses for the
// cover page.
func (c *ActivityController) FirstPagePrintPreview(ctx echo.Context) error {
	activity, tr, err := c.detailLookup(ctx)
	if err != nil {
		return err
	}

	return ctx.HTML(http.StatusOK, c.rewriter.Rewrite(firstPageHTML(activity, tr)))
}

// ContentPrintPreview renders the HTML the PDF service uses for the body
// pages. Image sources are resolved through the media store first.
func (c *ActivityController) ContentPrintPreview(ctx echo.Context) error {
	_, tr, err := c.detailLookup(ctx)
	if err != nil {
		return err
	}

	return ctx.HTML(http.StatusOK, c.rewriter.Rewrite(contentHTML(tr)))
}

// PrintPreview renders the whole printable activity, cover page followed
// by the body sections.
func (c *ActivityController) PrintPreview(ctx echo.Context) error {
	activity, tr, err := c.detailLookup(ctx)
	if err != nil {
		return err
	}

	return ctx.HTML(http.StatusOK, c.rewriter.Rewrite(firstPageHTML(activity, tr)+contentHTML(tr)))
}

func firstPageHTML(activity *aemodel.Activity, tr *aemodel.ActivityTranslation) string {
	var b strings.Builder
	b.WriteString("<h1>" + tr.Title + "</h1>\n")
	b.WriteString("<p class=\"code\">" + activity.Code + "</p>\n")
	b.WriteString("<p class=\"teaser\">" + tr.Teaser + "</p>\n")
	for _, author := range activity.Authors {
		b.WriteString("<p class=\"author\">" + author.DisplayName() + "</p>\n")
	}
	return b.String()
}

func contentHTML(tr *aemodel.ActivityTranslation) string {
	sections := []struct {
		heading string
		body    string
	}{
		{"Goals", tr.Goals},
		{"Objectives", tr.Objectives},
		{"Materials", tr.Materials},
		{"Background", tr.Background},
		{"Description", tr.FullDesc},
		{"Evaluation", tr.Evaluation},
		{"Curriculum", tr.Curriculum},
		{"Additional Information", tr.AdditionalInformation},
		{"Conclusion", tr.Conclusion},
		{"Further Reading", tr.FurtherReading},
		{"References", tr.Reference},
	}

	var b strings.Builder
	for _, section := range sections {
		if section.body == "" {
			continue
		}
		b.WriteString("<h2>" + section.heading + "</h2>\n")
		b.WriteString(section.body + "\n")
	}
	return b.String()
}

func (c *ActivityController) detailLookup(ctx echo.Context) (*aemodel.Activity, *aemodel.ActivityTranslation, error) {
	activity, err := c.activityStor.GetActivityByCode(ctx.Param("code"), apimiddleware.GetViewer(ctx), c.now())
	if err != nil {
		return nil, nil, notFoundOr(err)
	}

	tr := visibility.DetailTranslation(activity, requestLanguage(ctx), c.now())
	if tr == nil {
		return nil, nil, echo.ErrNotFound
	}

	return activity, tr, nil
}

func activeLanguages(activity *aemodel.Activity, now time.Time) []string {
	var languages []string
	for _, tr := range visibility.ActiveTranslations(activity, now) {
		languages = append(languages, tr.LanguageCode)
	}
	return languages
}

func requestLanguage(ctx echo.Context) string {
	if lang := ctx.QueryParam("lang"); lang != "" {
		return lang
	}
	return visibility.DefaultLanguage
}

func queryInt(ctx echo.Context, name string) int {
	n, err := strconv.Atoi(ctx.QueryParam(name))
	if err != nil {
		return 0
	}
	return n
}

func notFoundOr(err error) error {
	if errors.Is(err, stor.ErrNotFound) {
		return echo.ErrNotFound
	}
	return err
}

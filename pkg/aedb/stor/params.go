package stor

import (
	"time"

	"github.com/astroedu/astroedu/pkg/aedb/aemodel"
	"github.com/astroedu/astroedu/pkg/visibility"
	"github.com/pkg/errors"
)

// DefaultPageSize is the listing page size on the public site.
const DefaultPageSize = 10

// ValidCategories are the category facet values the listing accepts.
// CategoryAll is the sentinel meaning no category restriction.
var ValidCategories = map[string]bool{
	aemodel.CategoryAll:        true,
	aemodel.CategorySpace:      true,
	aemodel.CategoryEarth:      true,
	aemodel.CategoryNavigation: true,
	aemodel.CategoryHeritage:   true,
}

// ActivityListParams describes one listing request: who is asking, which
// language they browse in, and the facets they selected. Facets combine
// with logical AND.
type ActivityListParams struct {
	Viewer    visibility.Viewer
	Now       time.Time
	Lang      string
	Category  string
	LevelCode string
	AgeCode   string
	Page      int
	PageSize  int
	Ascending bool
}

// Validate rejects unknown category names. An unknown category is a caller
// error; it must never reach the query.
func (p ActivityListParams) Validate() error {
	if p.Category != "" && !ValidCategories[p.Category] {
		return errors.Errorf("unknown activity category: %s", p.Category)
	}
	return nil
}

func (p ActivityListParams) pageSize() int {
	if p.PageSize <= 0 {
		return DefaultPageSize
	}
	return p.PageSize
}

func (p ActivityListParams) page() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

func (p ActivityListParams) hasCategory() bool {
	return p.Category != "" && p.Category != aemodel.CategoryAll
}

// ActivityListing pairs an activity with the translation surfaced for the
// requested language (falling back to any active language).
type ActivityListing struct {
	Activity    aemodel.Activity            `json:"activity"`
	Translation aemodel.ActivityTranslation `json:"translation"`
}

// ActivityPage is one page of listing results plus the counts callers need
// to render pagination controls. Levels carries the level vocabulary so
// listing pages can render the facet filter without a second request.
type ActivityPage struct {
	Items      []ActivityListing        `json:"items"`
	Levels     []aemodel.MetadataOption `json:"levels"`
	Page       int                      `json:"page"`
	PageSize   int                      `json:"page_size"`
	TotalCount int                      `json:"total_count"`
	PageCount  int                      `json:"page_count"`
}

func newActivityPage(items []ActivityListing, page, pageSize, total int) *ActivityPage {
	pageCount := total / pageSize
	if total%pageSize != 0 {
		pageCount++
	}
	return &ActivityPage{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		PageCount:  pageCount,
	}
}

package webapi

import (
	"net/http"
	"time"

	"github.com/astroedu/astroedu/pkg/aedb/stor"
	"github.com/astroedu/astroedu/pkg/visibility"
	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"
)

// feedItemCount is how many activities the RSS feed carries.
const feedItemCount = 9

type FeedController struct {
	activityStor stor.ActivityStor
	siteURL      string
	now          func() time.Time
}

func NewFeedController(activityStor stor.ActivityStor, siteURL string) *FeedController {
	return &FeedController{
		activityStor: activityStor,
		siteURL:      siteURL,
		now:          time.Now,
	}
}

// ActivityFeed serves the RSS feed of the latest activities. The feed is
// always the anonymous view, no matter who asks.
func (c *FeedController) ActivityFeed(ctx echo.Context) error {
	now := c.now()
	page, err := c.activityStor.ListActivities(stor.ActivityListParams{
		Viewer:   visibility.Anonymous,
		Now:      now,
		Lang:     requestLanguage(ctx),
		PageSize: feedItemCount,
	})
	if err != nil {
		return err
	}

	feed := &feeds.Feed{
		Title:       "astroEDU activities",
		Link:        &feeds.Link{Href: c.siteURL + "/activities/"},
		Description: "Latest peer-reviewed astronomy education activities",
		Updated:     now,
	}

	for i := range page.Items {
		item := &page.Items[i]
		created := item.Activity.CreatedAt
		if item.Activity.ReleaseDate != nil {
			created = *item.Activity.ReleaseDate
		}

		feed.Items = append(feed.Items, &feeds.Item{
			Id:          item.Activity.Code,
			Title:       item.Translation.Title,
			Description: item.Translation.Teaser,
			Link:        &feeds.Link{Href: c.siteURL + item.Activity.CanonicalPath(&item.Translation)},
			Created:     created,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		return err
	}

	return ctx.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}

package cmd

import (
	"github.com/astroedu/astroedu/pkg/aedb/stor"
	"github.com/astroedu/astroedu/pkg/aeweb/webapi"
	"github.com/astroedu/astroedu/pkg/aeweb/webapi/apimiddleware"
	"github.com/astroedu/astroedu/pkg/media"
	"github.com/astroedu/astroedu/pkg/relimg"
	"github.com/labstack/echo/v4"
)

type RouteOpts struct {
	stors      *stor.Stors
	mediaStore media.Store
	rewriter   *relimg.Rewriter
	siteURL    string
	maxUpload  int64
}

func setupRoutes(e *echo.Echo, opts RouteOpts) {
	e.Use(apimiddleware.ResolveViewer(apimiddleware.ViewerConfig{
		GetUserByAPIToken: opts.stors.UserStor.GetUserByAPIToken,
		GetUserByEmail:    opts.stors.UserStor.GetUserByEmail,
	}))

	activityController := webapi.NewActivityController(opts.stors.ActivityStor, opts.stors.MetadataOptionStor, opts.rewriter)
	e.GET("/activities/", activityController.ListActivities)
	e.GET("/activities/featured/", activityController.FeaturedActivities)
	e.GET("/activities/category/:category/", activityController.ListActivities)
	e.GET("/activities/:code/", activityController.ResolveActivity)
	e.GET("/activities/:code/:slug/", activityController.GetActivity)
	e.GET("/activities/:code/print-preview/", activityController.PrintPreview)
	e.GET("/activities/:code/first-page-print-preview/", activityController.FirstPagePrintPreview)
	e.GET("/activities/:code/content-print-preview/", activityController.ContentPrintPreview)

	feedController := webapi.NewFeedController(opts.stors.ActivityStor, opts.siteURL)
	e.GET("/activities/feed/", feedController.ActivityFeed)

	sitemapController := webapi.NewSitemapController(opts.stors.ActivityStor, opts.stors.CollectionStor, opts.siteURL)
	e.GET("/sitemap.xml", sitemapController.Sitemap)

	collectionController := webapi.NewCollectionController(opts.stors.CollectionStor)
	e.GET("/collections/", collectionController.ListCollections)
	e.GET("/collections/:slug/", collectionController.GetCollection)

	smartPageController := webapi.NewSmartPageController(opts.stors.SmartPageStor)
	e.GET("/pages/:url/", smartPageController.GetSmartPage)

	uploadController := webapi.NewUploadController(opts.mediaStore, opts.maxUpload)
	e.POST("/api/uploader/", uploadController.UploadMarkdownImage, apimiddleware.RequireStaff)

	// Old activity URLs had no code segment; resolve them by slug.
	e.GET("/:slug/", activityController.ResolveLegacySlug)
}

package webapi

import (
	"net/http"
	"time"

	"github.com/astroedu/astroedu/pkg/aedb/aemodel"
	"github.com/astroedu/astroedu/pkg/aedb/stor"
	"github.com/astroedu/astroedu/pkg/aeweb/webapi/apimiddleware"
	"github.com/astroedu/astroedu/pkg/visibility"
	"github.com/labstack/echo/v4"
)

type CollectionController struct {
	collectionStor stor.CollectionStor
	now            func() time.Time
}

func NewCollectionController(collectionStor stor.CollectionStor) *CollectionController {
	return &CollectionController{
		collectionStor: collectionStor,
		now:            time.Now,
	}
}

func (c *CollectionController) ListCollections(ctx echo.Context) error {
	collections, err := c.collectionStor.ListCollections(apimiddleware.GetViewer(ctx), c.now())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, collections)
}

// CollectionResponse pairs a collection with the translations surfaced
// for its member activities in the requested language.
type CollectionResponse struct {
	Collection aemodel.Collection     `json:"collection"`
	Members    []stor.ActivityListing `json:"members"`
}

func (c *CollectionController) GetCollection(ctx echo.Context) error {
	collection, err := c.collectionStor.GetCollectionBySlug(ctx.Param("slug"), apimiddleware.GetViewer(ctx), c.now())
	if err != nil {
		return notFoundOr(err)
	}

	lang := requestLanguage(ctx)
	now := c.now()

	var members []stor.ActivityListing
	for i := range collection.Activities {
		tr := visibility.TranslationForLanguage(&collection.Activities[i], lang, now, true)
		if tr == nil {
			continue
		}
		members = append(members, stor.ActivityListing{Activity: collection.Activities[i], Translation: *tr})
	}

	return ctx.JSON(http.StatusOK, &CollectionResponse{Collection: *collection, Members: members})
}

package webapi

import (
	"net/http"
	"time"

	"github.com/astroedu/astroedu/pkg/aedb/stor"
	"github.com/astroedu/astroedu/pkg/aeweb/webapi/apimiddleware"
	"github.com/labstack/echo/v4"
)

type SmartPageController struct {
	smartPageStor stor.SmartPageStor
	now           func() time.Time
}

func NewSmartPageController(smartPageStor stor.SmartPageStor) *SmartPageController {
	return &SmartPageController{
		smartPageStor: smartPageStor,
		now:           time.Now,
	}
}

// GetSmartPage serves a static content page by URL path, falling back to
// the default language when the requested one has no page.
func (c *SmartPageController) GetSmartPage(ctx echo.Context) error {
	page, err := c.smartPageStor.GetSmartPageByURL(ctx.Param("url"), requestLanguage(ctx), apimiddleware.GetViewer(ctx), c.now())
	if err != nil {
		return notFoundOr(err)
	}

	return ctx.JSON(http.StatusOK, page)
}

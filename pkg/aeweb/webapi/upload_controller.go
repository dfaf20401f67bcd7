package webapi

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/astroedu/astroedu/pkg/media"
	"github.com/hashicorp/go-uuid"
	"github.com/labstack/echo/v4"
)

// uploadField is the multipart field the markdown editor posts images in.
const uploadField = "markdown-image-upload"

// DefaultMaxUploadBytes caps markdown image uploads at 5 MiB.
const DefaultMaxUploadBytes = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/png":   true,
	"image/jpg":   true,
	"image/jpeg":  true,
	"image/pjpeg": true,
	"image/gif":   true,
}

type UploadController struct {
	mediaStore media.Store
	maxBytes   int64
}

func NewUploadController(mediaStore media.Store, maxBytes int64) *UploadController {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &UploadController{mediaStore: mediaStore, maxBytes: maxBytes}
}

// UploadResponse is the shape the markdown editor widget expects back.
type UploadResponse struct {
	Status int    `json:"status"`
	Link   string `json:"link,omitempty"`
	Name   string `json:"name,omitempty"`
	Error  string `json:"error,omitempty"`
}

// UploadMarkdownImage accepts an image from the markdown editor, stores
// it under uploads/ with a short unique prefix, and returns the URL to
// embed.
func (c *UploadController) UploadMarkdownImage(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile(uploadField)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("missing %s field", uploadField))
	}

	if !allowedImageTypes[fileHeader.Header.Get("Content-Type")] {
		return uploadRejected(ctx, fmt.Sprintf("bad image format: %s", fileHeader.Header.Get("Content-Type")))
	}

	if fileHeader.Size > c.maxBytes {
		return uploadRejected(ctx, fmt.Sprintf("maximum image size exceeded (%d > %d bytes)", fileHeader.Size, c.maxBytes))
	}

	f, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	prefix, err := uploadPrefix()
	if err != nil {
		return err
	}

	name := strings.ReplaceAll(fileHeader.Filename, " ", "-")
	key, err := c.mediaStore.Save(path.Join("uploads", prefix+"-"+name), f)
	if err != nil {
		return err
	}

	link, err := c.mediaStore.URL(key)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, &UploadResponse{Status: http.StatusOK, Link: link, Name: name})
}

// uploadPrefix is the first 10 hex digits of a fresh uuid, enough to keep
// same-named uploads from clobbering each other.
func uploadPrefix() (string, error) {
	id, err := uuid.GenerateUUID()
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(id, "-", "")[:10], nil
}

func uploadRejected(ctx echo.Context, msg string) error {
	return ctx.JSON(http.StatusMethodNotAllowed, &UploadResponse{Status: http.StatusMethodNotAllowed, Error: msg})
}

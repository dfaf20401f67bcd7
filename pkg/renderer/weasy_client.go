package renderer

import (
	"fmt"

	"github.com/go-resty/resty/v2"
)

// WeasyClient renders PDFs through a weasyprint HTTP service. The service
// fetches the activity's print-preview pages from the public site and
// returns the combined PDF.
type WeasyClient struct {
	c       *resty.Client
	siteURL string
}

// NewWeasyClient takes the render service base URL and the public site URL
// the service should fetch print previews from.
func NewWeasyClient(serviceURL, siteURL string) *WeasyClient {
	return &WeasyClient{
		c:       resty.New().SetBaseURL(serviceURL),
		siteURL: siteURL,
	}
}

type renderRequest struct {
	HeaderURL  string `json:"header_url"`
	ContentURL string `json:"content_url"`
}

func (c *WeasyClient) RenderActivityPDF(code, lang string) ([]byte, error) {
	req := renderRequest{
		HeaderURL:  fmt.Sprintf("%s/activities/%s/first-page-print-preview/?lang=%s", c.siteURL, code, lang),
		ContentURL: fmt.Sprintf("%s/activities/%s/content-print-preview/?lang=%s", c.siteURL, code, lang),
	}

	resp, err := c.c.R().
		SetHeader("Accept", "application/pdf").
		SetBody(req).
		Post("/render")
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		_, err := ToErrorFromResponse(resp)
		return nil, err
	}

	return resp.Body(), nil
}

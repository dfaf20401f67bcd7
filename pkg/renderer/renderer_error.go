package renderer

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
)

var ErrRenderService = errors.New("render service")

// ErrorResponse describes the JSON the render service responds with when a
// render fails.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func ToErrorFromResponse(resp *resty.Response) (*ErrorResponse, error) {
	var errorResponse ErrorResponse
	if err := json.Unmarshal(resp.Body(), &errorResponse); err != nil {
		return nil, errors.Join(ErrRenderService, fmt.Errorf("(HTTP Status: %d)- unable to parse json error response: %s", resp.RawResponse.StatusCode, err))
	}

	return &errorResponse, errors.Join(ErrRenderService, fmt.Errorf("(HTTP Status: %d)- %s: %s", resp.RawResponse.StatusCode, errorResponse.Code, errorResponse.Message))
}

package download

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client fetches reference workbooks published over HTTP.
type Client interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a download client with the given timeout and optional bearer token.
func NewClient(timeout time.Duration, token string) *APIClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	restyClient := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Accept", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet, application/octet-stream")
	if token != "" {
		restyClient.SetAuthToken(token)
	}

	return &APIClient{httpClient: restyClient}
}

// Fetch downloads the body at url.
func (c *APIClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", url, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("download %s: status %d", url, resp.StatusCode())
	}

	return resp.Body(), nil
}

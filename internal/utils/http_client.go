package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// resty keeps a cookie jar per client, so a single HTTPClient behaves like a
// browser session: the CSRF secret cookie set by GET /api/csrf/token is sent
// back on subsequent requests.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a client whose relative request URLs resolve
// against baseURL. An empty baseURL leaves URLs untouched.
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://localhost:5000")
//	resp, err := client.R().Get("/api/csrf/token")
func NewHTTPClient(baseURL string) *HTTPClient {
	client := resty.New().
		SetTimeout(10*time.Second).
		SetHeader("Accept", ContentTypeJSON)
	if baseURL != "" {
		client.SetBaseURL(baseURL)
	}

	return &HTTPClient{Client: client}
}

// WithCSRFToken returns a request carrying token in the CSRF-Token header.
func (c *HTTPClient) WithCSRFToken(token string) *resty.Request {
	return c.R().SetHeader("CSRF-Token", token)
}

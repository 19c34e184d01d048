package interpret

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-resty/resty/v2"

	"github.com/forge-scaffold/forge/pkg/models"
)

// ProxyClient sends descriptions to the forge proxy, which holds the API key
// and the system prompt and enforces a per-client quota.
type ProxyClient struct {
	url    string
	http   *resty.Client
	logger *slog.Logger
}

// NewProxyClient creates a client for the proxy at url, or DefaultProxyURL
// when url is empty.
func NewProxyClient(url string, opts ...Option) *ProxyClient {
	if url == "" {
		url = DefaultProxyURL
	}
	o := buildOptions(opts)
	return &ProxyClient{
		url:    url,
		http:   newRestyClient(o),
		logger: o.logger,
	}
}

type proxyRequest struct {
	Description string `json:"description"`
}

// Interpret posts the description to the proxy and parses the reply.
func (c *ProxyClient) Interpret(ctx context.Context, description string) (models.ProjectConfig, error) {
	if err := checkDescription(description); err != nil {
		return models.ProjectConfig{}, err
	}

	c.logger.Debug("interpreting description", "mode", "proxy", "url", c.url)
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(proxyRequest{Description: description}).
		Post(c.url)
	if err != nil {
		return models.ProjectConfig{}, fmt.Errorf("%w: %w", ErrService, err)
	}
	c.logger.Debug("proxy replied", "status", resp.StatusCode(), "elapsed", resp.Time())

	return handleReply(resp)
}

package interpret

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/forge-scaffold/forge/pkg/models"
)

// DirectClient calls the Anthropic Messages API with the user's own key.
type DirectClient struct {
	apiURL string
	apiKey string
	model  string
	http   *resty.Client
	logger *slog.Logger
}

// NewDirectClient creates a client authenticating with apiKey.
func NewDirectClient(apiKey string, opts ...Option) (*DirectClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	o := buildOptions(opts)
	return &DirectClient{
		apiURL: o.apiURL,
		apiKey: apiKey,
		model:  o.model,
		http:   newRestyClient(o),
		logger: o.logger,
	}, nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []message `json:"messages"`
}

// Interpret sends the description with the system prompt and parses the
// first text block of the reply.
func (c *DirectClient) Interpret(ctx context.Context, description string) (models.ProjectConfig, error) {
	if err := checkDescription(description); err != nil {
		return models.ProjectConfig{}, err
	}

	c.logger.Debug("interpreting description", "mode", "direct", "model", c.model)
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeaders(map[string]string{
			"Content-Type":      "application/json",
			"x-api-key":         c.apiKey,
			"anthropic-version": AnthropicVersion,
		}).
		SetBody(messagesRequest{
			Model:     c.model,
			MaxTokens: maxTokens,
			System:    SystemPrompt(),
			Messages:  []message{{Role: "user", Content: description}},
		}).
		Post(c.apiURL)
	if err != nil {
		return models.ProjectConfig{}, fmt.Errorf("%w: %w", ErrService, err)
	}
	c.logger.Debug("messages api replied", "status", resp.StatusCode(), "elapsed", resp.Time())

	return handleReply(resp)
}

package interpret

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/forge-scaffold/forge/pkg/models"
	"github.com/forge-scaffold/forge/pkg/version"
)

// Defaults for interpreter clients.
const (
	DefaultProxyURL = "https://forge-proxy.jjarrett21.workers.dev"
	DefaultAPIURL   = "https://api.anthropic.com/v1/messages"
	DefaultModel    = "claude-3-5-haiku-20241022"
	DefaultTimeout  = 60 * time.Second
	DefaultRetries  = 2

	// AnthropicVersion is sent as the anthropic-version header.
	AnthropicVersion = "2023-06-01"

	maxTokens = 1024
)

// Interpreter turns a free-text description into a project configuration.
type Interpreter interface {
	Interpret(ctx context.Context, description string) (models.ProjectConfig, error)
}

type clientOptions struct {
	timeout    time.Duration
	retries    int
	retryWait  time.Duration
	apiURL     string
	model      string
	logger     *slog.Logger
	httpClient *http.Client
}

// Option configures an interpreter client.
type Option func(*clientOptions)

// WithTimeout bounds a whole request including retries.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithRetries sets how many times a request failing with a connection error
// or a 5xx status is retried. A 429 is never retried.
func WithRetries(n int) Option {
	return func(o *clientOptions) {
		if n >= 0 {
			o.retries = n
		}
	}
}

// WithRetryWait sets the minimum backoff between retries.
func WithRetryWait(d time.Duration) Option {
	return func(o *clientOptions) { o.retryWait = d }
}

// WithAPIURL overrides the Messages API endpoint used in direct mode.
func WithAPIURL(url string) Option {
	return func(o *clientOptions) {
		if url != "" {
			o.apiURL = url
		}
	}
}

// WithModel selects the model used in direct mode.
func WithModel(model string) Option {
	return func(o *clientOptions) {
		if model != "" {
			o.model = model
		}
	}
}

// WithLogger sets the logger for requests and retries.
func WithLogger(l *slog.Logger) Option {
	return func(o *clientOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHTTPClient replaces the retrying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = c }
}

func buildOptions(opts []Option) clientOptions {
	o := clientOptions{
		timeout:   DefaultTimeout,
		retries:   DefaultRetries,
		retryWait: time.Second,
		apiURL:    DefaultAPIURL,
		model:     DefaultModel,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// newRestyClient builds a resty client on top of a retrying transport.
func newRestyClient(o clientOptions) *resty.Client {
	httpClient := o.httpClient
	if httpClient == nil {
		retryClient := retryablehttp.NewClient()
		retryClient.RetryMax = o.retries
		retryClient.RetryWaitMin = o.retryWait
		retryClient.RetryWaitMax = 10 * o.retryWait
		retryClient.Logger = o.logger
		retryClient.CheckRetry = retryPolicy
		// Hand the last response back so its status and body reach the caller.
		retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
		httpClient = retryClient.StandardClient()
	}

	return resty.NewWithClient(httpClient).
		SetTimeout(o.timeout).
		SetHeader("User-Agent", "forge/"+version.GetVersion())
}

// retryPolicy retries connection errors and 5xx replies, never 429: the
// proxy's quota is daily, so waiting would not help.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

func checkDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

// handleReply maps a finished exchange to a configuration or an error.
func handleReply(resp *resty.Response) (models.ProjectConfig, error) {
	if resp.IsError() {
		return models.ProjectConfig{}, &ServiceError{
			StatusCode: resp.StatusCode(),
			Message:    errorMessage(resp.Body()),
		}
	}
	text, err := replyText(resp.Body())
	if err != nil {
		return models.ProjectConfig{}, err
	}
	return ParseConfig(text)
}

// Mode selects how descriptions reach the model.
type Mode string

// Interpreter modes.
const (
	ModeProxy  Mode = "proxy"
	ModeDirect Mode = "direct"
)

// IsValid reports whether m is a known mode.
func (m Mode) IsValid() bool {
	return m == ModeProxy || m == ModeDirect
}

// New returns the interpreter for mode. proxyURL is used in proxy mode and
// apiKey in direct mode.
func New(mode Mode, proxyURL, apiKey string, opts ...Option) (Interpreter, error) {
	switch mode {
	case ModeProxy, "":
		return NewProxyClient(proxyURL, opts...), nil
	case ModeDirect:
		c, err := NewDirectClient(apiKey, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown interpreter mode %q (want %q or %q)", mode, ModeProxy, ModeDirect)
	}
}

package interpret

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/forge-scaffold/forge/pkg/models"
)

//go:embed prompts/system.txt
var systemPrompt string

// SystemPrompt returns the instructions sent with direct requests.
func SystemPrompt() string {
	return systemPrompt
}

// fencePattern matches a reply wrapped in a markdown code fence, with or
// without a json language tag.
var fencePattern = regexp.MustCompile("(?is)^```(?:json)?\\s*(.*?)\\s*```$")

var requiredKeys = []string{"projectName", "frontend", "backend", "database", "useDocker"}

// StripFences removes a surrounding markdown code fence from text.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}

// ParseConfig decodes a model reply into a validated ProjectConfig. Fenced
// and bare JSON produce the same result.
func ParseConfig(text string) (models.ProjectConfig, error) {
	var cfg models.ProjectConfig
	body := []byte(StripFences(text))

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return cfg, fmt.Errorf("%w: expected a JSON object", ErrInvalidConfig)
		}
		return cfg, fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}

	var missing []string
	for _, key := range requiredKeys {
		if _, ok := fields[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return cfg, fmt.Errorf("%w: missing fields %s", ErrInvalidConfig, strings.Join(missing, ", "))
	}

	if err := json.Unmarshal(body, &cfg); err != nil {
		return models.ProjectConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return models.ProjectConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type messageResponse struct {
	Content []contentBlock `json:"content"`
}

// replyText extracts the text of the first content block of a Messages API
// style reply.
func replyText(body []byte) (string, error) {
	var msg messageResponse
	if err := json.Unmarshal(body, &msg); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}
	if len(msg.Content) == 0 {
		return "", ErrEmptyResponse
	}
	block := msg.Content[0]
	if block.Type != "text" {
		return "", fmt.Errorf("%w: content type %q", ErrUnexpectedResponse, block.Type)
	}
	return block.Text, nil
}

// errorMessage pulls a human message out of an error body. The proxy sends
// {"error": "..."}; the Messages API sends {"error": {"message": "..."}}.
func errorMessage(body []byte) string {
	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return strings.TrimSpace(string(body))
	}

	var msg string
	if err := json.Unmarshal(envelope.Error, &msg); err != nil {
		var nested struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(envelope.Error, &nested) == nil {
			msg = nested.Message
		}
	}
	if envelope.Message != "" && envelope.Message != msg {
		if msg == "" {
			return envelope.Message
		}
		return msg + ": " + envelope.Message
	}
	return msg
}

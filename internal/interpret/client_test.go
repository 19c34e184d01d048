package interpret

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/forge-scaffold/forge/pkg/models"
)

func messageBody(text string) string {
	raw, _ := json.Marshal(map[string]any{
		"content": []map[string]string{{"type": "text", "text": text}},
	})
	return string(raw)
}

// replyServer answers every request with status and body and records the
// requests it saw.
type replyServer struct {
	*httptest.Server
	hits     atomic.Int32
	lastBody []byte
	lastReq  *http.Request
}

func newReplyServer(t *testing.T, status int, body string) *replyServer {
	t.Helper()
	rs := &replyServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.hits.Add(1)
		rs.lastBody, _ = io.ReadAll(r.Body)
		rs.lastReq = r
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(rs.Close)
	return rs
}

func testOptions() []Option {
	return []Option{WithRetries(0), WithTimeout(5 * time.Second)}
}

func TestProxyClientInterpret(t *testing.T) {
	want := models.ProjectConfig{
		ProjectName: "test-project",
		Frontend:    models.FrontendNext,
		Backend:     models.BackendTypeScriptPrisma,
		Database:    models.DatabasePostgres,
	}
	raw, err := json.Marshal(want)
	if err != nil {
		t.Fatal(err)
	}

	for name, text := range map[string]string{
		"bare":   string(raw),
		"fenced": "```json\n" + string(raw) + "\n```",
	} {
		t.Run(name, func(t *testing.T) {
			srv := newReplyServer(t, http.StatusOK, messageBody(text))
			client := NewProxyClient(srv.URL, testOptions()...)

			got, err := client.Interpret(context.Background(), "Next.js app with a Prisma backend")
			if err != nil {
				t.Fatalf("Interpret error: %v", err)
			}
			if got != want {
				t.Errorf("got %+v, want %+v", got, want)
			}

			if srv.lastReq.Method != http.MethodPost {
				t.Errorf("method = %s, want POST", srv.lastReq.Method)
			}
			if ct := srv.lastReq.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
				t.Errorf("Content-Type = %q", ct)
			}
			var sent map[string]string
			if err := json.Unmarshal(srv.lastBody, &sent); err != nil {
				t.Fatalf("request body %q: %v", srv.lastBody, err)
			}
			if len(sent) != 1 || sent["description"] != "Next.js app with a Prisma backend" {
				t.Errorf("request body = %s", srv.lastBody)
			}
		})
	}
}

func TestProxyClientRateLimit(t *testing.T) {
	srv := newReplyServer(t, http.StatusTooManyRequests, `{"error":"Rate limit exceeded. Maximum 10 requests per day."}`)
	client := NewProxyClient(srv.URL, WithRetries(3), WithRetryWait(time.Millisecond))

	_, err := client.Interpret(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, ErrQuotaExceeded) || !errors.Is(err, ErrService) {
		t.Errorf("error = %v, want ErrQuotaExceeded and ErrService", err)
	}
	for _, want := range []string{"Rate limit exceeded", "interactive"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err, want)
		}
	}
	if hits := srv.hits.Load(); hits != 1 {
		t.Errorf("hits = %d, 429 must not be retried", hits)
	}
}

func TestProxyClientServiceError(t *testing.T) {
	srv := newReplyServer(t, http.StatusInternalServerError, `{"error":"Proxy error"}`)
	client := NewProxyClient(srv.URL, testOptions()...)

	_, err := client.Interpret(context.Background(), "anything")
	if !errors.Is(err, ErrService) {
		t.Fatalf("error = %v, want ErrService", err)
	}
	if errors.Is(err, ErrQuotaExceeded) {
		t.Error("a 500 is not a quota error")
	}
	if !strings.Contains(err.Error(), "Proxy error") {
		t.Errorf("error %q should carry the service message", err)
	}
	if strings.Contains(err.Error(), "Rate limit exceeded") {
		t.Errorf("error %q should not mention the rate limit", err)
	}

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("error = %T, want *ServiceError", err)
	}
	if svcErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", svcErr.StatusCode)
	}
}

func TestProxyClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, messageBody(validReply))
	}))
	t.Cleanup(srv.Close)

	client := NewProxyClient(srv.URL, WithRetries(2), WithRetryWait(time.Millisecond))
	got, err := client.Interpret(context.Background(), "React and FastAPI")
	if err != nil {
		t.Fatalf("Interpret error: %v", err)
	}
	if got.ProjectName != "test-project" {
		t.Errorf("ProjectName = %q", got.ProjectName)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("calls = %d, want 2", n)
	}
}

func TestProxyClientReplyErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"empty content", `{"content":[]}`, ErrEmptyResponse},
		{"non text block", `{"content":[{"type":"image"}]}`, ErrUnexpectedResponse},
		{"prose", messageBody("I think you want React."), ErrMalformedJSON},
		{"invalid kind", messageBody(`{"projectName":"x","frontend":"angular","backend":"none","database":"none","useDocker":false}`), ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newReplyServer(t, http.StatusOK, tt.body)
			_, err := NewProxyClient(srv.URL, testOptions()...).Interpret(context.Background(), "x")
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestProxyClientRejectsBlankDescription(t *testing.T) {
	srv := newReplyServer(t, http.StatusOK, messageBody(validReply))
	_, err := NewProxyClient(srv.URL, testOptions()...).Interpret(context.Background(), "   ")
	if !errors.Is(err, ErrEmptyDescription) {
		t.Errorf("error = %v, want ErrEmptyDescription", err)
	}
	if hits := srv.hits.Load(); hits != 0 {
		t.Errorf("hits = %d, a blank description must not reach the service", hits)
	}
}

func TestProxyClientUnreachable(t *testing.T) {
	srv := newReplyServer(t, http.StatusOK, "")
	url := srv.URL
	srv.Close()

	_, err := NewProxyClient(url, testOptions()...).Interpret(context.Background(), "x")
	if !errors.Is(err, ErrService) {
		t.Errorf("error = %v, want ErrService", err)
	}
}

func TestDirectClientInterpret(t *testing.T) {
	srv := newReplyServer(t, http.StatusOK, messageBody("```json\n"+validReply+"\n```"))
	client, err := NewDirectClient("sk-test", append(testOptions(), WithAPIURL(srv.URL), WithModel("test-model"))...)
	if err != nil {
		t.Fatalf("NewDirectClient error: %v", err)
	}

	got, err := client.Interpret(context.Background(), "React with FastAPI and Postgres")
	if err != nil {
		t.Fatalf("Interpret error: %v", err)
	}
	if got.Backend != models.BackendFastAPI {
		t.Errorf("Backend = %s, want fastapi", got.Backend)
	}

	if key := srv.lastReq.Header.Get("x-api-key"); key != "sk-test" {
		t.Errorf("x-api-key = %q", key)
	}
	if v := srv.lastReq.Header.Get("anthropic-version"); v != AnthropicVersion {
		t.Errorf("anthropic-version = %q, want %q", v, AnthropicVersion)
	}

	var req messagesRequest
	if err := json.Unmarshal(srv.lastBody, &req); err != nil {
		t.Fatalf("request body: %v", err)
	}
	if req.Model != "test-model" {
		t.Errorf("model = %q", req.Model)
	}
	if req.MaxTokens != 1024 {
		t.Errorf("max_tokens = %d, want 1024", req.MaxTokens)
	}
	if req.System != SystemPrompt() {
		t.Error("system prompt not sent")
	}
	want := message{Role: "user", Content: "React with FastAPI and Postgres"}
	if len(req.Messages) != 1 || req.Messages[0] != want {
		t.Errorf("messages = %+v, want [%+v]", req.Messages, want)
	}
}

func TestDirectClientAPIError(t *testing.T) {
	srv := newReplyServer(t, http.StatusUnauthorized, `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`)
	client, err := NewDirectClient("sk-bad", append(testOptions(), WithAPIURL(srv.URL))...)
	if err != nil {
		t.Fatalf("NewDirectClient error: %v", err)
	}

	_, err = client.Interpret(context.Background(), "x")
	if !errors.Is(err, ErrService) {
		t.Errorf("error = %v, want ErrService", err)
	}
	if err != nil && !strings.Contains(err.Error(), "invalid x-api-key") {
		t.Errorf("error %q should carry the API message", err)
	}
}

func TestNewDirectClientRequiresKey(t *testing.T) {
	if _, err := NewDirectClient(""); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("error = %v, want ErrMissingAPIKey", err)
	}
}

func TestNew(t *testing.T) {
	in, err := New(ModeProxy, "", "")
	if err != nil {
		t.Fatalf("New(proxy) error: %v", err)
	}
	pc, ok := in.(*ProxyClient)
	if !ok {
		t.Fatalf("New(proxy) = %T, want *ProxyClient", in)
	}
	if pc.url != DefaultProxyURL {
		t.Errorf("url = %q, want %q", pc.url, DefaultProxyURL)
	}

	in, err = New(ModeDirect, "", "sk-test")
	if err != nil {
		t.Fatalf("New(direct) error: %v", err)
	}
	if _, ok := in.(*DirectClient); !ok {
		t.Errorf("New(direct) = %T, want *DirectClient", in)
	}

	if _, err := New(ModeDirect, "", ""); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("error = %v, want ErrMissingAPIKey", err)
	}
	if _, err := New(Mode("carrier-pigeon"), "", ""); err == nil {
		t.Error("expected an error for an unknown mode")
	}
}

func TestDefaultLoggerIsSilent(t *testing.T) {
	o := buildOptions(nil)
	if o.logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should discard every level")
	}
}

package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"framekey/internal/config"
)

const userAgent = "Framekey/0.1.0"

// Service defines the notification surface exposed to the engine and
// daemon. All methods are fire-and-forget from the caller's point of
// view; errors are logged, never acted on.
type Service interface {
	NotifyAccepted(ctx context.Context, filename string) error
	NotifyDuplicate(ctx context.Context, filename, reason, matched string) error
	NotifyFingerprintFailed(ctx context.Context, filename string) error
	NotifyNoSelection(ctx context.Context) error
	NotifyError(ctx context.Context, err error, contextLabel string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when
// configured. When no ntfy topic is set, a noop implementation is
// returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyAccepted(ctx context.Context, filename string) error {
	data := payload{
		title:   "Framekey - Recorded",
		message: fmt.Sprintf("'%s' processed and recorded.", strings.TrimSpace(filename)),
		tags:    []string{"framekey", "recorded"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyDuplicate(ctx context.Context, filename, reason, matched string) error {
	message := fmt.Sprintf("'%s' rejected: %s.", strings.TrimSpace(filename), strings.TrimSpace(reason))
	if matched = strings.TrimSpace(matched); matched != "" {
		message = fmt.Sprintf("%s\nMatches: %s", message, matched)
	}
	data := payload{
		title:   "Framekey - Duplicate",
		message: message,
		tags:    []string{"framekey", "duplicate"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyFingerprintFailed(ctx context.Context, filename string) error {
	data := payload{
		title:   "Framekey - Read Error",
		message: fmt.Sprintf("Could not read first frame of '%s'.", strings.TrimSpace(filename)),
		tags:    []string{"framekey", "error"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyNoSelection(ctx context.Context) error {
	data := payload{
		title:   "Framekey - No Selection",
		message: "Please select exactly one video file first.",
		tags:    []string{"framekey", "selection"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Framekey - Error",
		message:  builder.String(),
		tags:     []string{"framekey", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Framekey - Test",
		message:  "Notification system test",
		tags:     []string{"framekey", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyAccepted(context.Context, string) error                  { return nil }
func (noopService) NotifyDuplicate(context.Context, string, string, string) error { return nil }
func (noopService) NotifyFingerprintFailed(context.Context, string) error         { return nil }
func (noopService) NotifyNoSelection(context.Context) error                       { return nil }
func (noopService) NotifyError(context.Context, error, string) error              { return nil }
func (noopService) TestNotification(context.Context) error                        { return nil }

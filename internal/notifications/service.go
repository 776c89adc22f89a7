package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pipoca/internal/config"
)

const userAgent = "Pipoca/0.1.0"

// Service defines the notification surface exposed to batch enrichment.
type Service interface {
	NotifyBatchStarted(ctx context.Context, count int) error
	NotifyBatchCompleted(ctx context.Context, added, skipped, failed int, duration time.Duration) error
	NotifyPruned(ctx context.Context, removed int, titles []string) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
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
		endpoint:      topic,
		client:        &http.Client{Timeout: timeout},
		batchComplete: cfg.Notifications.BatchComplete,
		prune:         cfg.Notifications.Prune,
		errors:        cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint      string
	client        *http.Client
	batchComplete bool
	prune         bool
	errors        bool
}

func (n *ntfyService) NotifyBatchStarted(ctx context.Context, count int) error {
	if !n.batchComplete {
		return nil
	}
	data := payload{
		title:   "Pipoca - Batch Started",
		message: fmt.Sprintf("Enriching %d new files", count),
		tags:    []string{"pipoca", "batch", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyBatchCompleted(ctx context.Context, added, skipped, failed int, duration time.Duration) error {
	if !n.batchComplete {
		return nil
	}
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}

	var title, message string
	if failed == 0 {
		title = "Pipoca - Batch Complete"
		message = fmt.Sprintf("Batch complete: %d added, %d skipped in %s", added, skipped, duration)
	} else {
		title = "Pipoca - Batch Complete (with errors)"
		message = fmt.Sprintf("Batch complete: %d added, %d skipped, %d failed in %s", added, skipped, failed, duration)
	}

	data := payload{
		title:   title,
		message: message,
		tags:    []string{"pipoca", "batch", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyPruned(ctx context.Context, removed int, titles []string) error {
	if !n.prune || removed == 0 {
		return nil
	}
	message := fmt.Sprintf("Removed %d catalog records whose files are gone", removed)
	if len(titles) > 0 {
		preview := titles
		if len(preview) > 5 {
			preview = preview[:5]
		}
		message = fmt.Sprintf("%s:\n%s", message, strings.Join(preview, "\n"))
	}
	data := payload{
		title:   "Pipoca - Catalog Pruned",
		message: message,
		tags:    []string{"pipoca", "prune"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errors {
		return nil
	}
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
		title:    "Pipoca - Error",
		message:  builder.String(),
		tags:     []string{"pipoca", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Pipoca - Test",
		message:  "Notification system test",
		tags:     []string{"pipoca", "test"},
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

func (noopService) NotifyBatchStarted(context.Context, int) error { return nil }
func (noopService) NotifyBatchCompleted(context.Context, int, int, int, time.Duration) error {
	return nil
}
func (noopService) NotifyPruned(context.Context, int, []string) error { return nil }
func (noopService) NotifyError(context.Context, error, string) error  { return nil }
func (noopService) TestNotification(context.Context) error            { return nil }

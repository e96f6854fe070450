package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"splitaudit/internal/config"
	"splitaudit/internal/report"
)

const userAgent = "splitaudit/0.1.0"

// Service is the notification surface the audit command talks to.
type Service interface {
	AuditCompleted(ctx context.Context, rep *report.Report) error
	AuditFailed(ctx context.Context, runErr error, datasetRoot string) error
}

// NewService builds an ntfy-backed service when a topic is configured.
// Without a topic a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeoutSeconds) * time.Second
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

// AuditCompleted pushes the run summary. HIGH and CRITICAL outcomes are
// delivered at elevated priority so they surface immediately.
func (n *ntfyService) AuditCompleted(ctx context.Context, rep *report.Report) error {
	level := rep.RiskAssessment.Level
	noun := "issues"
	if rep.RiskAssessment.IssuesFound == 1 {
		noun = "issue"
	}
	data := payload{
		title: fmt.Sprintf("splitaudit - %s", level),
		message: fmt.Sprintf("Audit of %s finished: %d %s across %d samples",
			rep.DatasetRoot, rep.RiskAssessment.IssuesFound, noun, rep.TotalSamples),
		tags: []string{"splitaudit", "audit", strings.ToLower(string(level))},
	}
	if level == report.RiskHigh || level == report.RiskCritical {
		data.priority = "high"
	}
	return n.send(ctx, data)
}

func (n *ntfyService) AuditFailed(ctx context.Context, runErr error, datasetRoot string) error {
	detail := "unknown"
	if runErr != nil {
		detail = strings.TrimSpace(runErr.Error())
	}
	message := fmt.Sprintf("Audit failed: %s", detail)
	if datasetRoot = strings.TrimSpace(datasetRoot); datasetRoot != "" {
		message = fmt.Sprintf("Audit of %s failed: %s", datasetRoot, detail)
	}
	data := payload{
		title:    "splitaudit - Audit Failed",
		message:  message,
		tags:     []string{"splitaudit", "audit", "failed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("create ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if p := data.priority; p != "" && p != "default" {
		req.Header.Set("Priority", p)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) AuditCompleted(context.Context, *report.Report) error { return nil }
func (noopService) AuditFailed(context.Context, error, string) error     { return nil }

package emojimosaic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"
)

// Delivery defaults
const (
	DefaultInterval = 250 * time.Millisecond
	DefaultRetries  = 2
	// DiscordMessageLimit is the longest message content a Discord webhook accepts
	DiscordMessageLimit = 2000
)

// Sink accepts text blocks one at a time
type Sink interface {
	Send(ctx context.Context, block string) error
}

// WriterSink writes each block followed by a newline
type WriterSink struct {
	w io.Writer
}

// NewWriterSink returns a sink writing to w
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Send writes block to the underlying writer
func (s *WriterSink) Send(_ context.Context, block string) error {
	_, err := io.WriteString(s.w, block+"\n")
	return err
}

// WebhookSink posts each block as the content of a chat webhook message
type WebhookSink struct {
	URL       string
	Client    *http.Client
	MaxLength int // maximum block length in runes; 0 means DiscordMessageLimit
}

// NewWebhookSink returns a sink posting to url with a 10s request timeout
func NewWebhookSink(url string) *WebhookSink {
	return &WebhookSink{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

type webhookMessage struct {
	Content string `json:"content"`
}

// Send posts block. Blocks longer than MaxLength fail with ErrBlockTooLarge.
func (s *WebhookSink) Send(ctx context.Context, block string) error {
	limit := s.MaxLength
	if limit <= 0 {
		limit = DiscordMessageLimit
	}
	if n := utf8.RuneCountInString(block); n > limit {
		return fmt.Errorf("%w: %d > %d runes", ErrBlockTooLarge, n, limit)
	}

	body, err := json.Marshal(webhookMessage{Content: block})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post block: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned %s", resp.Status)
	}
	return nil
}

// DeliverOptions configures Deliver
type DeliverOptions struct {
	// Interval is the pause after every send attempt
	Interval time.Duration
	// Retries is how many extra attempts a failing block gets
	Retries  int
	Progress Progress
}

// Deliver sends blocks to sink in order, pausing opts.Interval after each
// attempt. A block that still fails after opts.Retries retries stops the
// delivery. It returns the number of blocks delivered.
func Deliver(ctx context.Context, sink Sink, blocks []string, opts *DeliverOptions) (int, error) {
	if opts == nil {
		opts = &DeliverOptions{Interval: DefaultInterval, Retries: DefaultRetries}
	}
	progress := newReporter(opts.Progress, StageDeliver, len(blocks))

	for i, block := range blocks {
		var err error
		for attempt := 0; attempt <= opts.Retries; attempt++ {
			err = sink.Send(ctx, block)
			if waitErr := sleepCtx(ctx, opts.Interval); waitErr != nil {
				return i, newError(KindDelivery, fmt.Sprintf("deliver block %d", i+1), "", waitErr)
			}
			if err == nil || errors.Is(err, ErrBlockTooLarge) {
				break
			}
		}
		if err != nil {
			return i, newError(KindDelivery, fmt.Sprintf("deliver block %d", i+1), "", err)
		}
		progress.add(1)
	}
	return len(blocks), nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

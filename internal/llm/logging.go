package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/pitchdeck/internal/logging"
	"github.com/abhisek/pitchdeck/internal/store"
)

// auditWriteTimeout bounds the audit row insert. The insert runs detached
// from the caller's context, which may already be cancelled.
const auditWriteTimeout = 2 * time.Second

// LoggingProvider writes a zap line and an audit row for every request.
type LoggingProvider struct {
	inner  Provider
	vendor string
	repo   store.EventRepo
}

// WithLogging wraps p. repo may be nil, in which case only the zap line is
// written.
func WithLogging(p Provider, vendor string, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, vendor: vendor, repo: repo}
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	ev := l.event(ctx, req, resp, err, time.Since(start))

	fields := []zap.Field{
		zap.String("provider", ev.Provider),
		zap.String("model", ev.Model),
		zap.String("purpose", ev.Purpose),
		zap.String("request_id", ev.RequestID),
		zap.Int64("latency_ms", ev.LatencyMs),
		zap.Int("input_tokens", ev.InputTokens),
		zap.Int("output_tokens", ev.OutputTokens),
	}
	if err != nil {
		logging.Warn("llm request failed", append(fields, zap.Error(err))...)
	} else {
		logging.Debug("llm request", fields...)
	}

	if l.repo != nil {
		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditWriteTimeout)
		defer cancel()
		if werr := l.repo.AppendLLMRequest(wctx, ev); werr != nil {
			logging.Warn("failed to record LLM request event", zap.Error(werr))
		}
	}
	return resp, err
}

func (l *LoggingProvider) event(ctx context.Context, req Request, resp *Response, err error, took time.Duration) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		Provider:    l.vendor,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		RequestID:   RequestIDFrom(ctx),
		LatencyMs:   took.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}
	if resp != nil {
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = resp.Text
		if resp.Model != "" {
			ev.Model = resp.Model
		}
	}
	return ev
}

// transcript renders the request as the "[role]" blocks shown by
// `pitchdeck llm view`.
func transcript(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	return b.String()
}

package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/adaptiq/internal/store"
)

// LoggingProvider records every call as an llm_request event.
type LoggingProvider struct {
	inner Provider
	repo  store.EventRepo
	log   logrus.FieldLogger
}

// WithLogging wraps p. A nil repo disables persistence; a nil log uses
// the standard logrus logger.
func WithLogging(p Provider, repo store.EventRepo, log logrus.FieldLogger) Provider {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LoggingProvider{inner: p, repo: repo, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start).Milliseconds()

	data := store.LLMRequestEventData{
		Provider:    l.inner.Name(),
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   latency,
		Success:     err == nil,
		RequestBody: renderRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	entry := l.log.WithFields(logrus.Fields{
		"provider":   data.Provider,
		"model":      data.Model,
		"purpose":    data.Purpose,
		"latency_ms": latency,
	})
	if err != nil {
		entry.WithError(err).Debug("llm request failed")
	} else {
		entry.WithField("tokens", data.InputTokens+data.OutputTokens).Debug("llm request")
	}

	if l.repo != nil {
		// Use a fresh context so a cancelled request is still recorded.
		if logErr := l.repo.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
			l.log.WithError(logErr).Warn("failed to record llm request")
		}
	}
	return resp, err
}

func (l *LoggingProvider) Name() string    { return l.inner.Name() }
func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

// renderRequest produces the human-readable transcript stored with the event.
func renderRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}

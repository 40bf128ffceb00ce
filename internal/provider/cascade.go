package provider

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// First tries each provider strictly in order and returns the first
// non-empty response. It is a fallback chain, not a race: a provider
// is only asked once the previous one has failed. The boolean is
// false when every provider failed; callers substitute their own
// task-specific fallback text in that case.
func First(ctx context.Context, providers []Provider, prompt string, logger *zap.Logger) (string, bool) {
	for _, p := range providers {
		text, err := p.Generate(ctx, prompt)
		if err != nil {
			logger.Warn("provider failed, trying next",
				zap.String("provider", p.Name()),
				zap.Error(err),
			)
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			logger.Warn("provider returned empty text, trying next", zap.String("provider", p.Name()))
			continue
		}

		logger.Debug("cascade resolved",
			zap.String("provider", p.Name()),
			zap.Int("response_length", len(text)),
		)
		return text, true
	}

	return "", false
}

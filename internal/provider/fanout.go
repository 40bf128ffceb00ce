package provider

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MinMeaningfulLength is the minimum trimmed response length accepted
// by CollectAll. Anything shorter carries no usable opinion and is
// dropped like a failed call.
const MinMeaningfulLength = 50

// CollectAll asks every provider the same prompt and gathers each
// acceptable answer. Unlike First it never short-circuits: the point
// is an ensemble of independent opinions. Calls run concurrently, and
// all of them complete (or individually fail) before the function
// returns. Results keep the provider-list order regardless of which
// call finished first. The returned slice may be empty.
func CollectAll(ctx context.Context, providers []Provider, prompt string, logger *zap.Logger) []Response {
	collected := make([]*Response, len(providers))

	var group errgroup.Group
	for i, p := range providers {
		group.Go(func() error {
			text, err := p.Generate(ctx, prompt)
			if err != nil {
				logger.Warn("provider failed during fan-out",
					zap.String("provider", p.Name()),
					zap.Error(err),
				)
				return nil
			}

			text = strings.TrimSpace(text)
			if len(text) <= MinMeaningfulLength {
				logger.Warn("provider response too short, dropping",
					zap.String("provider", p.Name()),
					zap.Int("response_length", len(text)),
				)
				return nil
			}

			collected[i] = &Response{Provider: p.Name(), Text: text}
			return nil
		})
	}

	// Providers soft-fail, so the only purpose of Wait is the barrier:
	// aggregation must not start on partial results.
	_ = group.Wait()

	responses := make([]Response, 0, len(providers))
	for _, r := range collected {
		if r != nil {
			responses = append(responses, *r)
		}
	}

	logger.Debug("fan-out collection finished",
		zap.Int("providers", len(providers)),
		zap.Int("accepted", len(responses)),
	)

	return responses
}

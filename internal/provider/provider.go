package provider

import "context"

// Provider is a single external language model reachable by one
// text-in/text-out call. Implementations own their endpoint, auth and
// request shape; every failure mode (transport, status, malformed
// payload) is returned as an error and never distinguished further.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Response pairs a provider with the raw text it returned.
type Response struct {
	Provider string `json:"provider"`
	Text     string `json:"text"`
}

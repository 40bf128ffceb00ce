package provider

import (
	"testing"

	"google.golang.org/genai"
)

func TestCollapseCandidates(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			nil,
			{Content: nil},
			{Content: &genai.Content{Parts: []*genai.Part{
				nil,
				{Text: "  first part  "},
				{Text: ""},
				{Text: "second part"},
			}}},
		},
	}

	if got := collapseCandidates(resp); got != "first part\nsecond part" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestCollapseCandidatesEmpty(t *testing.T) {
	if got := collapseCandidates(nil); got != "" {
		t.Fatalf("expected empty string for nil response, got %q", got)
	}

	if got := collapseCandidates(&genai.GenerateContentResponse{}); got != "" {
		t.Fatalf("expected empty string for empty response, got %q", got)
	}
}

package analysis

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/kaya-ai/resume-radar/internal/provider"
)

type stubProvider struct {
	name string
	text string
	err  error

	mu      sync.Mutex
	prompts []string
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Generate(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()

	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func (s *stubProvider) recordedPrompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}

func evaluationText(score string) string {
	return "SCORE: " + score + "\n\nGAPS:\n• gap one\n• gap two\n\nMISSING_KEYWORDS:\n• keyword\n\nRECOMMENDATIONS:\n• recommendation\n"
}

func newTestAnalyzer(providers []provider.Provider) *Analyzer {
	return New(providers, func() int { return 0 }, zap.NewNop())
}

func TestRunAllProvidersFail(t *testing.T) {
	providers := []provider.Provider{
		&stubProvider{name: "Gemini", err: errors.New("down")},
		&stubProvider{name: "OpenRouter", err: errors.New("down")},
		&stubProvider{name: "Mistral", err: errors.New("down")},
	}

	resumeText := strings.Repeat("a", 500)
	result := newTestAnalyzer(providers).Run(context.Background(), "Acme", "Backend Engineer", resumeText)

	if len(result.Evaluations) != 1 {
		t.Fatalf("expected exactly one fallback evaluation, got %d", len(result.Evaluations))
	}

	eval := result.Evaluations[0]
	if eval.Provider != FallbackProviderName {
		t.Fatalf("expected fallback provider tag, got %q", eval.Provider)
	}
	if eval.Record.Score != 65 {
		t.Fatalf("expected fallback score 65 for a 500-char resume, got %d", eval.Record.Score)
	}

	if result.FinalScore != 65 {
		t.Fatalf("expected final score 65 with pinned jitter, got %f", result.FinalScore)
	}
	if math.Abs(result.DisplayScore-6.5) > 0.2 {
		t.Fatalf("expected display score near 6.5, got %f", result.DisplayScore)
	}

	if strings.TrimSpace(result.IdealResume) == "" {
		t.Fatal("ideal resume must never be empty")
	}
	if !strings.Contains(result.IdealResume, "BACKEND ENGINEER") {
		t.Fatalf("fallback resume should mention the role: %q", result.IdealResume[:80])
	}
	if result.RunID == "" {
		t.Fatal("run id must be set")
	}
}

func TestRunTwoOfThreeProviders(t *testing.T) {
	providers := []provider.Provider{
		&stubProvider{name: "Gemini", text: evaluationText("80")},
		&stubProvider{name: "OpenRouter", err: errors.New("down")},
		&stubProvider{name: "Mistral", text: evaluationText("40")},
	}

	result := newTestAnalyzer(providers).Run(context.Background(), "Acme", "SRE", "resume body")

	if len(result.Evaluations) != 2 {
		t.Fatalf("expected 2 evaluations, got %d", len(result.Evaluations))
	}
	if result.Evaluations[0].Provider != "Gemini" || result.Evaluations[1].Provider != "Mistral" {
		t.Fatalf("unexpected evaluation order: %+v", result.Evaluations)
	}
	if result.Evaluations[0].Record.Score != 80 || result.Evaluations[1].Record.Score != 40 {
		t.Fatalf("unexpected scores: %+v", result.Evaluations)
	}

	if result.FinalScore != 60 {
		t.Fatalf("expected mean 60 with pinned jitter, got %f", result.FinalScore)
	}
}

func TestRunJitterStaysBounded(t *testing.T) {
	providers := []provider.Provider{
		&stubProvider{name: "Gemini", text: evaluationText("80")},
		&stubProvider{name: "Mistral", text: evaluationText("40")},
	}

	analyzer := New(providers, nil, zap.NewNop())
	for i := 0; i < 20; i++ {
		result := analyzer.Run(context.Background(), "Acme", "SRE", "resume body")
		if result.FinalScore < 58 || result.FinalScore > 62 {
			t.Fatalf("final score out of [58,62]: %f", result.FinalScore)
		}
	}
}

func TestEvaluationPromptEmbedsIdealResume(t *testing.T) {
	ideal := "IDEAL RESUME CONTENT " + strings.Repeat("x", 60)
	p := &stubProvider{name: "Gemini", text: ideal}

	analyzer := newTestAnalyzer([]provider.Provider{p})
	analyzer.Run(context.Background(), "Acme", "SRE", "user resume body")

	prompts := p.recordedPrompts()
	if len(prompts) != 2 {
		t.Fatalf("expected generation + evaluation prompts, got %d", len(prompts))
	}

	if strings.Contains(prompts[0], "user resume body") {
		t.Fatal("generation prompt must not embed the user resume")
	}
	if !strings.Contains(prompts[0], "Acme") || !strings.Contains(prompts[0], "SRE") {
		t.Fatal("generation prompt must mention company and role")
	}

	// The evaluation stage consumes the literal output of the
	// generation stage.
	if !strings.Contains(prompts[1], ideal) {
		t.Fatal("evaluation prompt must embed the generated ideal resume")
	}
	if !strings.Contains(prompts[1], "user resume body") {
		t.Fatal("evaluation prompt must embed the user resume")
	}
}

func TestGenerateIdealResumeCascade(t *testing.T) {
	failing := &stubProvider{name: "Gemini", err: errors.New("down")}
	working := &stubProvider{name: "Mistral", text: "a perfectly good resume"}

	analyzer := newTestAnalyzer([]provider.Provider{failing, working})
	got := analyzer.GenerateIdealResume(context.Background(), "Acme", "SRE")

	if got != "a perfectly good resume" {
		t.Fatalf("unexpected resume: %q", got)
	}
}

func TestEvaluateResumeNeverEmpty(t *testing.T) {
	analyzer := newTestAnalyzer(nil)

	responses := analyzer.EvaluateResume(context.Background(), "resume", "ideal", "Acme", "SRE")
	if len(responses) != 1 {
		t.Fatalf("expected one fallback response, got %d", len(responses))
	}
	if responses[0].Provider != FallbackProviderName {
		t.Fatalf("unexpected provider tag: %q", responses[0].Provider)
	}
	if len(responses[0].Text) <= provider.MinMeaningfulLength {
		t.Fatal("fallback evaluation must itself be meaningful")
	}
}

func TestAggregateScoresPassesRecordsThrough(t *testing.T) {
	analyzer := newTestAnalyzer(nil)

	responses := []provider.Response{
		{Provider: "Gemini", Text: evaluationText("90")},
		{Provider: "Mistral", Text: "unparseable"},
	}

	final, evaluations := analyzer.AggregateScores(responses)

	if len(evaluations) != 2 {
		t.Fatalf("aggregation must not drop records, got %d", len(evaluations))
	}
	if evaluations[0].Record.Score != 90 || evaluations[1].Record.Score != 65 {
		t.Fatalf("unexpected scores: %+v", evaluations)
	}
	want := float64(90+65) / 2
	if final != want {
		t.Fatalf("expected %f, got %f", want, final)
	}
}

func TestFallbackEvaluationScoreBounds(t *testing.T) {
	short := fallbackEvaluation("", "SRE", "Acme")
	if !strings.Contains(short, "SCORE: 55") {
		t.Fatalf("expected score 55 for empty resume, got %q", short[:40])
	}

	long := fallbackEvaluation(strings.Repeat("a", 10000), "SRE", "Acme")
	if !strings.Contains(long, "SCORE: 85") {
		t.Fatalf("expected score capped at 85, got %q", long[:40])
	}
}

package analysis

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kaya-ai/resume-radar/internal/logger"
	"github.com/kaya-ai/resume-radar/internal/provider"
)

const previewLimit = 200

// Analyzer sequences the full evaluation workflow: ideal-resume
// generation, evaluation fan-out, per-response parsing and score
// aggregation. It holds no mutable state across runs, so a single
// Analyzer is safe for concurrent analyses.
type Analyzer struct {
	providers []provider.Provider
	jitter    JitterFunc
	logger    *zap.Logger
}

// New creates an Analyzer over the given providers. The provider
// order is significant: the cascade tries them in this order and
// fan-out results are reported in it. A nil jitter selects
// DefaultJitter.
func New(providers []provider.Provider, jitter JitterFunc, log *zap.Logger) *Analyzer {
	if jitter == nil {
		jitter = DefaultJitter
	}
	return &Analyzer{providers: providers, jitter: jitter, logger: log}
}

// GenerateIdealResume produces a benchmark resume for the target
// company and role. It always succeeds: when every provider fails,
// the deterministic template document is returned instead.
func (a *Analyzer) GenerateIdealResume(ctx context.Context, company, jobRole string) string {
	prompt := buildIdealResumePrompt(company, jobRole)

	text, ok := provider.First(ctx, a.providers, prompt, a.logger)
	if !ok {
		a.logger.Warn("all providers failed, using fallback ideal resume",
			zap.String("company", company),
			zap.String("job_role", jobRole),
		)
		return fallbackIdealResume(company, jobRole)
	}

	return text
}

// EvaluateResume asks every provider to compare the user's resume
// against the ideal one and returns each acceptable raw response. The
// returned list is never empty: when all providers fail, a single
// synthetic entry tagged as fallback is injected.
func (a *Analyzer) EvaluateResume(ctx context.Context, userResume, idealResume, company, jobRole string) []provider.Response {
	prompt := buildEvaluationPrompt(userResume, idealResume, company, jobRole)

	responses := provider.CollectAll(ctx, a.providers, prompt, a.logger)
	if len(responses) == 0 {
		a.logger.Warn("no provider produced a usable evaluation, injecting fallback",
			zap.String("company", company),
			zap.String("job_role", jobRole),
		)
		responses = append(responses, provider.Response{
			Provider: FallbackProviderName,
			Text:     fallbackEvaluation(userResume, jobRole, company),
		})
	}

	return responses
}

// AggregateScores parses each raw response and combines the resulting
// scores into the final value. Every response contributes exactly one
// record; none is dropped.
func (a *Analyzer) AggregateScores(responses []provider.Response) (float64, []ProviderEvaluation) {
	evaluations := make([]ProviderEvaluation, 0, len(responses))
	for _, resp := range responses {
		record := ParseEvaluation(resp.Text)
		evaluations = append(evaluations, ProviderEvaluation{
			Provider: resp.Provider,
			Record:   record,
		})

		a.logger.Debug("parsed provider evaluation",
			zap.String("provider", resp.Provider),
			zap.Int("score", record.Score),
			zap.String("response_preview", logger.TruncateForLog(resp.Text, previewLimit)),
		)
	}

	return aggregateScore(evaluations, a.jitter), evaluations
}

// Run executes the end-to-end analysis. It never fails: lower layers
// absorb their own errors, and any unexpected panic in the
// orchestration itself degrades to a fixed fallback result.
func (a *Analyzer) Run(ctx context.Context, company, jobRole, resumeText string) (result *Result) {
	company = strings.TrimSpace(company)
	jobRole = strings.TrimSpace(jobRole)
	resumeText = strings.TrimSpace(resumeText)

	runID := uuid.NewString()
	log := a.logger.With(zap.String("run_id", runID))

	defer func() {
		if r := recover(); r != nil {
			log.Error("analysis aborted unexpectedly, substituting fallback result", zap.Any("cause", r))
			result = fallbackResult(runID, company, jobRole)
		}
	}()

	log.Info("starting analysis",
		zap.String("company", company),
		zap.String("job_role", jobRole),
		zap.Int("resume_length", len(resumeText)),
		zap.Int("providers", len(a.providers)),
	)

	idealResume := a.GenerateIdealResume(ctx, company, jobRole)
	log.Info("ideal resume ready", zap.Int("length", len(idealResume)))

	responses := a.EvaluateResume(ctx, resumeText, idealResume, company, jobRole)
	log.Info("evaluations collected", zap.Int("count", len(responses)))

	finalScore, evaluations := a.AggregateScores(responses)
	log.Info("analysis finished",
		zap.Float64("final_score", finalScore),
		zap.Int("evaluations", len(evaluations)),
	)

	return &Result{
		RunID:        runID,
		Company:      company,
		JobRole:      jobRole,
		FinalScore:   finalScore,
		DisplayScore: displayScore(finalScore),
		IdealResume:  idealResume,
		Evaluations:  evaluations,
	}
}

// fallbackResult is the orchestrator's last line of defense: a
// complete, fixed result returned when the run itself blew up.
func fallbackResult(runID, company, jobRole string) *Result {
	record := EvaluationRecord{
		Score:           65,
		Gaps:            defaultGaps,
		MissingKeywords: defaultKeywords,
		Recommendations: defaultRecommendations,
	}

	return &Result{
		RunID:        runID,
		Company:      company,
		JobRole:      jobRole,
		FinalScore:   65,
		DisplayScore: 6.5,
		IdealResume:  fallbackIdealResume(company, jobRole),
		Evaluations:  []ProviderEvaluation{{Provider: FallbackProviderName, Record: record}},
	}
}

package analysis

import (
	"encoding/json"
	"os"
)

// EvaluationRecord is the structured form of one provider's free-text
// evaluation. All four fields are always populated: defaults stand in
// for anything the parser could not locate, and Score is always
// within [0,100]. The list fields hold formatted bullet blocks, not
// slices, because that is how they are displayed.
type EvaluationRecord struct {
	Score           int    `json:"score"`
	Gaps            string `json:"gaps"`
	MissingKeywords string `json:"missing_keywords"`
	Recommendations string `json:"recommendations"`
}

// ProviderEvaluation ties a parsed record to the provider that
// produced the underlying text.
type ProviderEvaluation struct {
	Provider string           `json:"provider"`
	Record   EvaluationRecord `json:"record"`
}

// Result is the complete outcome of one analysis run.
type Result struct {
	RunID        string               `json:"run_id"`
	Company      string               `json:"company"`
	JobRole      string               `json:"job_role"`
	FinalScore   float64              `json:"final_score"`
	DisplayScore float64              `json:"display_score"`
	IdealResume  string               `json:"ideal_resume"`
	Evaluations  []ProviderEvaluation `json:"evaluations"`
}

// DumpToTmpFile writes the result as indented JSON to a temporary
// file and returns its name.
func (r *Result) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "analysis_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}

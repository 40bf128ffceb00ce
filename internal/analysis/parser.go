package analysis

import (
	"regexp"
	"strconv"
	"strings"
)

// Section labels are matched case-insensitively and tolerate extra
// whitespace. Each text block runs until the next expected label or
// the end of the response.
var (
	scoreRe           = regexp.MustCompile(`(?i)SCORE:\s*(\d+)`)
	gapsRe            = regexp.MustCompile(`(?is)GAPS:\s*(.*?)(?:MISSING_KEYWORDS|$)`)
	keywordsRe        = regexp.MustCompile(`(?is)MISSING_KEYWORDS:\s*(.*?)(?:RECOMMENDATIONS|$)`)
	recommendationsRe = regexp.MustCompile(`(?is)RECOMMENDATIONS:\s*(.*)$`)
)

const (
	defaultScore = 65

	defaultGaps = "• Needs improvement in key areas\n" +
		"• Add more quantified achievements\n" +
		"• Enhance technical skills section"

	defaultKeywords = "• Programming languages\n" +
		"• Cloud technologies\n" +
		"• Industry frameworks\n" +
		"• Project management tools"

	defaultRecommendations = "• Quantify achievements with metrics\n" +
		"• Add relevant technical skills\n" +
		"• Include leadership examples\n" +
		"• Tailor to job requirements"
)

// ParseEvaluation extracts an EvaluationRecord from a provider's
// free-text response. Missing or malformed fields fall back to fixed
// defaults, so the record is always fully populated and parsing never
// fails outward. There is no randomness here: identical input yields
// an identical record.
func ParseEvaluation(text string) (record EvaluationRecord) {
	// A malformed or adversarial response must never abort the
	// pipeline; an unexpected panic degrades to the full default
	// record instead.
	defer func() {
		if r := recover(); r != nil {
			record = DefaultRecord()
		}
	}()

	record = EvaluationRecord{
		Score:           defaultScore,
		Gaps:            defaultGaps,
		MissingKeywords: defaultKeywords,
		Recommendations: defaultRecommendations,
	}

	if m := scoreRe.FindStringSubmatch(text); m != nil {
		if score, err := strconv.Atoi(m[1]); err == nil {
			record.Score = score
		}
	}

	if m := gapsRe.FindStringSubmatch(text); m != nil && strings.TrimSpace(m[1]) != "" {
		record.Gaps = strings.TrimSpace(m[1])
	}

	if m := keywordsRe.FindStringSubmatch(text); m != nil && strings.TrimSpace(m[1]) != "" {
		record.MissingKeywords = strings.TrimSpace(m[1])
	}

	if m := recommendationsRe.FindStringSubmatch(text); m != nil && strings.TrimSpace(m[1]) != "" {
		record.Recommendations = strings.TrimSpace(m[1])
	}

	record.Score = clampScore(record.Score)

	return record
}

// DefaultRecord is the record substituted when extraction cannot be
// trusted at all.
func DefaultRecord() EvaluationRecord {
	return EvaluationRecord{
		Score: 60,
		Gaps: "• Add more quantified achievements\n" +
			"• Include relevant technical skills\n" +
			"• Strengthen professional summary",
		MissingKeywords: "• Programming languages\n" +
			"• Cloud technologies\n" +
			"• Industry frameworks",
		Recommendations: "• Quantify all achievements\n" +
			"• Add technical skills\n" +
			"• Tailor to role requirements",
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

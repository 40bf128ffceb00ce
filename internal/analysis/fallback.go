package analysis

import (
	_ "embed"
	"fmt"
	"strings"
)

// FallbackProviderName tags the synthetic evaluation injected when
// every real provider failed.
const FallbackProviderName = "Fallback Analysis"

//go:embed prompts/fallback_resume.md
var fallbackResumeTemplate string

// fallbackIdealResume is the deterministic filler document used when
// no provider could generate an ideal resume. Generation tasks must
// always yield usable text downstream.
func fallbackIdealResume(company, jobRole string) string {
	resume := strings.ReplaceAll(fallbackResumeTemplate, "{{JOB_ROLE_UPPER}}", strings.ToUpper(jobRole))
	resume = strings.ReplaceAll(resume, "{{COMPANY_UPPER}}", strings.ToUpper(company))
	return strings.ReplaceAll(resume, "{{JOB_ROLE}}", jobRole)
}

// fallbackEvaluation builds a synthetic evaluation response in the
// same labeled format real providers are asked for, so it flows
// through the parser like any other response. The score is derived
// from the resume length alone: 55 plus one point per 50 characters,
// bounded to [45,85].
func fallbackEvaluation(userResume, jobRole, company string) string {
	score := 55 + float64(len(userResume))/50
	if score < 45 {
		score = 45
	}
	if score > 85 {
		score = 85
	}

	return fmt.Sprintf(`SCORE: %d

GAPS:
• Technical skills section needs more specific programming languages and frameworks
• Missing quantified achievements showing impact and results
• Lack of industry-specific keywords and technologies
• Professional summary could be more targeted to %s role

MISSING_KEYWORDS:
• Modern programming languages and frameworks
• Cloud technologies and platforms
• DevOps and automation tools
• Project management methodologies

RECOMMENDATIONS:
• Add specific metrics and quantified achievements to demonstrate impact
• Include relevant technical skills and certifications for %s
• Tailor professional summary to highlight %s-specific experience
• Research and incorporate industry-standard keywords and technologies
`, int(score+0.5), jobRole, jobRole, company)
}

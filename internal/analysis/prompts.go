package analysis

import (
	_ "embed"
	"strings"
)

//go:embed prompts/ideal_resume.md
var idealResumeTemplate string

//go:embed prompts/evaluation.md
var evaluationTemplate string

func buildIdealResumePrompt(company, jobRole string) string {
	prompt := strings.ReplaceAll(idealResumeTemplate, "{{COMPANY}}", company)
	return strings.ReplaceAll(prompt, "{{JOB_ROLE}}", jobRole)
}

func buildEvaluationPrompt(userResume, idealResume, company, jobRole string) string {
	prompt := strings.ReplaceAll(evaluationTemplate, "{{USER_RESUME}}", userResume)
	prompt = strings.ReplaceAll(prompt, "{{IDEAL_RESUME}}", idealResume)
	prompt = strings.ReplaceAll(prompt, "{{COMPANY}}", company)
	return strings.ReplaceAll(prompt, "{{JOB_ROLE}}", jobRole)
}

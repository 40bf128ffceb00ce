package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kaya-ai/resume-radar/internal/analysis"
	"github.com/kaya-ai/resume-radar/internal/logger"
	"github.com/kaya-ai/resume-radar/internal/provider"
	"github.com/kaya-ai/resume-radar/internal/resume"
	"github.com/kaya-ai/resume-radar/internal/secrets"
)

const (
	PromptShowReport      = "Show full report"
	PromptShowIdealResume = "Show ideal resume"
	PromptDumpToFile      = "Dump report to file"
	PromptExit            = "Exit"
)

var resultPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowReport, PromptShowIdealResume, PromptDumpToFile, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the resume analysis",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("company", "", "target company (overrides analysis.company)")
	runCmd.Flags().String("role", "", "target job role (overrides analysis.job-role)")
	runCmd.Flags().String("resume", "", "resume file, pdf or plain text (overrides analysis.resume-file)")
	runCmd.Flags().BoolP("yes", "y", false, "print the full report and exit without the interactive menu")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-radar", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	company, jobRole, resumeFile := resolveInputs(cmd, config)
	if company == "" || jobRole == "" || resumeFile == "" {
		logger.Fatal("company, job role and resume file are all required",
			zap.String("hint", "pass --company/--role/--resume or set the analysis section in the configuration file"),
		)
	}

	resumeText, err := resume.Load(resumeFile)
	if err != nil {
		logger.Fatal("loading resume", zap.String("file", resumeFile), zap.Error(err))
	}

	logger.Info("resume loaded", zap.String("file", resumeFile), zap.Int("length", len(resumeText)))

	providers := buildProviders(ctx, config, logger)
	if len(providers) == 0 {
		logger.Warn("no provider is configured, the analysis will rely entirely on fallbacks")
	}

	analyzer := analysis.New(providers, nil, logger)
	result := analyzer.Run(ctx, company, jobRole, resumeText)

	fmt.Printf("\nFinal score: %.1f/100 (%.1f/10)\n", result.FinalScore, result.DisplayScore)
	for _, eval := range result.Evaluations {
		fmt.Printf("  %s: %d/100\n", eval.Provider, eval.Record.Score)
	}
	fmt.Println()

	if cmd.Flag("yes").Value.String() == "true" {
		printReport(result)
		return
	}

	for {
		_, action, err := resultPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		switch action {
		case PromptShowReport:
			printReport(result)
		case PromptShowIdealResume:
			fmt.Println(result.IdealResume)
		case PromptDumpToFile:
			filename, err := result.DumpToTmpFile()
			if err != nil {
				logger.Fatal("dumping report to file", zap.Error(err))
			}
			logger.Info("dumped report to file", zap.String("filename", filename))
		case PromptExit:
			return
		}
	}
}

func resolveInputs(cmd *cobra.Command, config *Config) (company, jobRole, resumeFile string) {
	if config != nil && config.Analysis != nil {
		company = config.Analysis.Company
		jobRole = config.Analysis.JobRole
		resumeFile = config.Analysis.ResumeFile
	}

	if v := cmd.Flag("company").Value.String(); v != "" {
		company = v
	}
	if v := cmd.Flag("role").Value.String(); v != "" {
		jobRole = v
	}
	if v := cmd.Flag("resume").Value.String(); v != "" {
		resumeFile = v
	}

	return strings.TrimSpace(company), strings.TrimSpace(jobRole), strings.TrimSpace(resumeFile)
}

// defaultProviderOrder is used when the config does not pin one. It is
// also the cascade order for ideal-resume generation.
var defaultProviderOrder = []string{"gemini", "openrouter", "mistral"}

// buildProviders constructs every configured provider in the requested
// order. A provider without a usable API key is skipped with a
// warning; the pipeline tolerates any subset, including none.
func buildProviders(ctx context.Context, config *Config, logger *zap.Logger) []provider.Provider {
	var cfg *ProvidersConfig
	if config != nil {
		cfg = config.Providers
	}
	if cfg == nil {
		cfg = &ProvidersConfig{}
	}

	order := cfg.Order
	if len(order) == 0 {
		order = defaultProviderOrder
	}

	providers := make([]provider.Provider, 0, len(order))
	for _, name := range order {
		p, err := buildProvider(ctx, name, cfg, logger)
		if err != nil {
			logger.Warn("skipping provider", zap.String("provider", name), zap.Error(err))
			continue
		}

		providers = append(providers, p)
		logger.Info("provider configured", zap.String("provider", p.Name()))
	}

	return providers
}

func buildProvider(ctx context.Context, name string, cfg *ProvidersConfig, logger *zap.Logger) (provider.Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gemini":
		key, err := providerKey("gemini api key", cfg.Gemini, "GEMINI_API_KEY")
		if err != nil {
			return nil, err
		}
		return provider.NewGemini(ctx, key, providerModel(cfg.Gemini), logger)
	case "openrouter":
		key, err := providerKey("openrouter api key", cfg.OpenRouter, "OPENROUTER_API_KEY")
		if err != nil {
			return nil, err
		}
		return provider.NewOpenRouter(key, providerModel(cfg.OpenRouter), logger), nil
	case "mistral":
		key, err := providerKey("mistral api key", cfg.Mistral, "MISTRAL_API_KEY")
		if err != nil {
			return nil, err
		}
		return provider.NewMistral(key, providerModel(cfg.Mistral), logger), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
}

func providerKey(name string, cfg *ProviderConfig, env string) (string, error) {
	src := secrets.Source{Name: name, Env: env}
	if cfg != nil {
		src.File = cfg.APIKeyFile
	}
	return secrets.Load(src)
}

func providerModel(cfg *ProviderConfig) string {
	if cfg == nil {
		return ""
	}
	return cfg.Model
}

func printReport(result *analysis.Result) {
	for _, eval := range result.Evaluations {
		fmt.Printf("=== %s (score %d/100) ===\n\n", eval.Provider, eval.Record.Score)
		fmt.Printf("GAPS:\n%s\n\n", eval.Record.Gaps)
		fmt.Printf("MISSING KEYWORDS:\n%s\n\n", eval.Record.MissingKeywords)
		fmt.Printf("RECOMMENDATIONS:\n%s\n\n", eval.Record.Recommendations)
	}
}

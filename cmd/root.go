package cmd

import (
	"errors"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "resume-radar"
)

type Config struct {
	Analysis  *AnalysisConfig  `mapstructure:"analysis"`
	Providers *ProvidersConfig `mapstructure:"providers"`
}

type AnalysisConfig struct {
	Company    string `mapstructure:"company"`
	JobRole    string `mapstructure:"job-role"`
	ResumeFile string `mapstructure:"resume-file"`
}

type ProvidersConfig struct {
	// Order lists provider names and doubles as the cascade order.
	Order      []string        `mapstructure:"order"`
	Gemini     *ProviderConfig `mapstructure:"gemini"`
	OpenRouter *ProviderConfig `mapstructure:"openrouter"`
	Mistral    *ProviderConfig `mapstructure:"mistral"`
}

type ProviderConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-radar evaluates a resume against a generated ideal resume for a target company and role",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-radar.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The config file is optional when everything is given via flags,
	// but a present-and-broken one is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		cobra.CheckErr(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config

	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &config,
		TagName:  "mapstructure",
		// Allows providers.order to be given as "gemini,mistral"
		// from an env var or a flag-style string.
		DecodeHook: mapstructure.StringToSliceHookFunc(","),
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(viper.AllSettings()); err != nil {
		return nil, err
	}

	return config, nil
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sbridger/reckon/internal/errhandler"
	"github.com/sbridger/reckon/internal/ui/prompts"
)

type initRunner struct{}

func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the config file interactively",
		Long: `Walk through the report and logging defaults and save them to the
	config file. This is the only command that writes configuration;
	everything else runs fine without one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &initRunner{}
			return runner.Run()
		},
	}
}

func (r *initRunner) Run() error {
	places, err := prompts.PromptInitPlaces(cfg.Output.Places)
	if err != nil {
		return errhandler.HandleError(err)
	}

	pretty, err := prompts.PromptInitPretty(cfg.Output.Pretty)
	if err != nil {
		return errhandler.HandleError(err)
	}

	logFile, err := prompts.PromptInitLogFile(cfg.Logging.File)
	if err != nil {
		return errhandler.HandleError(err)
	}

	viper.Set("output.places", places)
	viper.Set("output.pretty", pretty)
	viper.Set("logging.file", logFile)

	path, err := writeConfig()
	if err != nil {
		return err
	}

	pterm.Success.Printf("Configuration saved to %s\n", path)
	return nil
}

// writeConfig saves the current settings to the explicit --config path
// when one was given, or to the default location, creating its directory
// if needed.
func writeConfig() (string, error) {
	if cfgFile != "" {
		if err := viper.WriteConfigAs(cfgFile); err != nil {
			return "", fmt.Errorf("failed to write config file: %w", err)
		}
		return cfgFile, nil
	}

	appDir, err := getAppDataDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, "config.yaml")
	if err := viper.WriteConfigAs(configPath); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}

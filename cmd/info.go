package cmd

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sbridger/reckon/internal/app"
	"github.com/sbridger/reckon/internal/ui/views"
)

type infoRunner struct {
	app *app.App
}

func NewInfoCmd(application *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display application information",
		Long:  `Display current configuration, log file path, and system details.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{
				app: application,
			}

			return runner.Run()
		},
	}
}

func (r *infoRunner) Run() error {
	configPath := r.app.Config.ConfigPath
	if configPath == "" {
		configPath = "(None, using defaults)"
	}

	rawLogFile := r.app.Config.Logging.File
	expandedLogFile, _ := expandPath(rawLogFile)

	logExists := false
	if expandedLogFile != "" {
		if _, err := os.Stat(expandedLogFile); err == nil {
			logExists = true
		}
	}

	places := "exact"
	if r.app.Config.Output.Places >= 0 {
		places = strconv.Itoa(int(r.app.Config.Output.Places))
	}

	items := views.SystemInfoItem{
		ConfigPath:    configPath,
		LogFile:       expandedLogFile,
		LogFileExists: logExists,
		OutputPlaces:  places,
		OutputPretty:  r.app.Config.Output.Pretty,
		AppDataDir:    getAppDataDirOrUnknown(),
	}

	if err := views.RenderSystemInfo(items); err != nil {
		return err
	}
	return nil
}

func getAppDataDirOrUnknown() string {
	dir, err := getAppDataDir()
	if err != nil {
		return "Unknown"
	}
	return dir
}

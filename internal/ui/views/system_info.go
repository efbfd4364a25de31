package views

import "github.com/pterm/pterm"

type SystemInfoItem struct {
	ConfigPath    string
	LogFile       string
	LogFileExists bool // true = Found, false = Not Found
	OutputPlaces  string
	OutputPretty  bool
	AppDataDir    string
}

func RenderSystemInfo(data SystemInfoItem) error {
	logFile := data.LogFile
	logStatus := pterm.Green("Found")
	if logFile == "" {
		logFile = "(None, rejection logging disabled)"
		logStatus = "-"
	} else if !data.LogFileExists {
		logStatus = pterm.Red("Not Found (Will be created)")
	}

	pretty := "No"
	if data.OutputPretty {
		pretty = "Yes"
	}

	tableData := pterm.TableData{
		{"Configuration File", data.ConfigPath},
		{"Log File", logFile},
		{"Log File Status", logStatus},
		{"Output Places", data.OutputPlaces},
		{"Pretty Output", pretty},
		{"AppData Directory", data.AppDataDir},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}

package config

type Config struct {
	Output     OutputConfig  `mapstructure:"output"`
	Logging    LoggingConfig `mapstructure:"logging"`
	ConfigPath string        `mapstructure:"-"`
}

type OutputConfig struct {
	// Places is the number of decimal places in rendered amounts. A
	// negative value keeps each amount's exact precision.
	Places int32 `mapstructure:"places"`
	Pretty bool  `mapstructure:"pretty"`
}

type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Quiet bool   `mapstructure:"quiet"`
}

func NewDefault() *Config {
	return &Config{
		Output:  OutputConfig{Places: -1, Pretty: false},
		Logging: LoggingConfig{File: "", Quiet: false},
	}
}

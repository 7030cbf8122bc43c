package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CLIConfig holds the flags shared by every hashlogd subcommand.
type CLIConfig struct {
	DBPath   string `mapstructure:"db"`
	LogLevel string `mapstructure:"log"`
	Discard  bool   `mapstructure:"discard"`
}

// NewDefaultCLIConfig returns a CLIConfig with default values: an
// in-memory store and debug logging, matching the teacher's
// NewDefaultConfig conventions of always populating every field.
func NewDefaultCLIConfig() *CLIConfig {
	return &CLIConfig{
		DBPath:   "",
		LogLevel: "debug",
		Discard:  false,
	}
}

func bindFlagsLoadViper(cmd *cobra.Command) error {
	if err := viper.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return err
	}
	if err := viper.Unmarshal(config); err != nil {
		return err
	}

	if logger == nil {
		logger = newLogger()
	}
	logger.Level = logLevel(config.LogLevel)

	return nil
}

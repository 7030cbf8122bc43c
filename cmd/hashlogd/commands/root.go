package commands

import (
	"io/ioutil"
	"os"

	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var (
	config = NewDefaultCLIConfig()
	logger *logrus.Logger
)

func init() {
	RootCmd.PersistentFlags().String("db", config.DBPath, "Badger database directory; empty uses an in-memory store")
	RootCmd.PersistentFlags().String("log", config.LogLevel, "debug, info, warn, error, fatal, panic")
	RootCmd.PersistentFlags().Bool("discard", config.Discard, "discard log output to stderr")

	RootCmd.AddCommand(
		NewAppendCmd(),
		NewJoinCmd(),
		NewRenderCmd(),
	)
}

// RootCmd is the root command for hashlogd.
var RootCmd = &cobra.Command{
	Use:              "hashlogd",
	Short:            "hashlog demo CLI",
	TraverseChildren: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlagsLoadViper(cmd)
	},
}

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.Formatter = new(prefixed.TextFormatter)

	pathMap := lfshook.PathMap{}

	if _, err := os.OpenFile("hashlogd.log", os.O_CREATE|os.O_WRONLY, 0666); err == nil {
		pathMap[logrus.DebugLevel] = "hashlogd.log"
		pathMap[logrus.InfoLevel] = "hashlogd.log"
	}

	if config.Discard {
		l.Out = ioutil.Discard
	}

	l.Hooks.Add(lfshook.NewHook(pathMap, &logrus.TextFormatter{}))

	return l
}

func logLevel(lv string) logrus.Level {
	switch lv {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.DebugLevel
	}
}

package logging

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"

	"offplanbot/internal/config"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

// Setup configures the package-level logrus logger: level, formatter and an optional
// rotating file written next to stdout.
func Setup(cfg config.LoggingConfig) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logrus.SetLevel(level)
	logrus.SetReportCaller(level >= logrus.DebugLevel)
	logrus.SetFormatter(NewFormatter(cfg.Format))
	logrus.SetOutput(Output(cfg))
	return nil
}

// NewFormatter returns the JSON formatter, or the text one for "text"
func NewFormatter(format string) logrus.Formatter {
	if format == "text" {
		return &logrus.TextFormatter{
			FullTimestamp:    true,
			CallerPrettyfier: callerPrettyfier,
		}
	}
	return &logrus.JSONFormatter{CallerPrettyfier: callerPrettyfier}
}

// Output is stdout, plus a lumberjack file when one is configured
func Output(cfg config.LoggingConfig) io.Writer {
	if cfg.File == "" {
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	})
}

func callerPrettyfier(f *runtime.Frame) (function string, file string) {
	_, filename := path.Split(f.File)
	return "", fmt.Sprintf("%s:%d", filename, f.Line)
}

// Package logger holds the process-wide zap logger.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Log *zap.Logger = zap.NewNop()

// Init builds the global logger. With a log file set it uses the JSON
// production encoder writing to both the file and stdout; otherwise the
// console development encoder.
func Init(level string, logFile string) error {
	var cfg zap.Config

	if logFile != "" {
		cfg = zap.NewProductionConfig()
		cfg.OutputPaths = []string{logFile, "stdout"}
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))

	built, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = built
	return nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func Sync() error {
	if Log != nil {
		return Log.Sync()
	}
	return nil
}

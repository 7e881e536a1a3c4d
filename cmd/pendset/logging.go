package main

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/TatyanaV/taxtastic/configuration"
)

// configureLogging builds the logger for a run. Log output never goes to
// stdout, which is reserved for results.
func configureLogging(out io.Writer, config *configuration.Configuration) (*logrus.Entry, error) {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(logLevel(logger, config.Log.Level))

	switch config.Log.Formatter {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	default:
		return nil, fmt.Errorf("unsupported logging formatter: %q", config.Log.Formatter)
	}

	entry := logger.WithField("version", version)
	if len(config.Log.Fields) > 0 {
		entry = entry.WithFields(logrus.Fields(config.Log.Fields))
	}
	entry.Debugf("using %q logging formatter", config.Log.Formatter)
	return entry, nil
}

func logLevel(logger *logrus.Logger, level configuration.Loglevel) logrus.Level {
	l, err := logrus.ParseLevel(string(level))
	if err != nil {
		l = logrus.InfoLevel
		logger.Warnf("error parsing level %q: %v, using %q", level, err, l)
	}
	return l
}

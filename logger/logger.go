package logger

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

const projectName = "orbit"

var (
	projectLogger *logrus.Logger
	once          sync.Once
)

// GetProjectLogger returns the shared project logger.
func GetProjectLogger() *logrus.Entry {
	once.Do(func() {
		projectLogger = logrus.New()
		projectLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	})
	return projectLogger.WithField("name", projectName)
}

// SetLevel parses a logrus level name and applies it to the project logger.
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	GetProjectLogger().Logger.SetLevel(lvl)
	return nil
}

// SetOutput redirects the project logger, e.g. away from a terminal ui.
func SetOutput(w io.Writer) {
	GetProjectLogger().Logger.SetOutput(w)
}

package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// NewLogger builds a logrus logger from the log.* keys. Unknown levels
// fall back to info.
func NewLogger(v *viper.Viper) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(v.GetString("log.level"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if v.GetString("log.format") == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}

// RedirectToFile sends log output to path, creating parent directories.
// The returned closer must be called on shutdown.
func RedirectToFile(log *logrus.Logger, path string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

// DefaultLogFile is where the terminal player writes logs when log.file
// is unset, next to the database.
func DefaultLogFile(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "adaptiq.log")
}

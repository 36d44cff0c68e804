package logging

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

var logFile *os.File

// Setup configures the process-wide logger from configuration.
// Diagnostics never touch stdout, which belongs to the protocol: they go
// to stderr, or to the configured log file when one is set.
func Setup() error {
	log.SetOutput(os.Stderr)
	log.SetReportCaller(viper.GetBool("logging.caller"))

	if level, err := log.ParseLevel(viper.GetString("logging.level")); err == nil {
		log.SetLevel(level)
	}

	path := viper.GetString("logging.file")

	if path == "" {
		return nil
	}

	var err error

	if logFile, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	log.SetOutput(logFile)
	log.Debug("logging initialized", "file", path)

	return nil
}

// Close closes the log file when one was opened.
func Close() {
	if logFile != nil {
		logFile.Close()
	}
}

package shared

import (
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures console logging at the named level. Unknown level
// strings fall back to info.
func SetupLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if parsed, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(parsed)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}

// Package wizard provides the interactive TUI for recording CT dose entries.
package wizard

import "github.com/mrsinham/ctdose/internal/checklist"

// Defaults applied when neither the config file nor a flag sets a value.
const (
	DefaultOutputDir = "."
	DefaultLogFile   = "ctdose.log"
	DefaultLogLevel  = "info"
)

// Settings holds the resolved runtime configuration of a session.
type Settings struct {
	OutputDir       string
	DefaultContrast checklist.Mode
	LogFile         string
	LogLevel        string
}

// DefaultSettings returns the settings used without a config file.
func DefaultSettings() Settings {
	return Settings{
		OutputDir:       DefaultOutputDir,
		DefaultContrast: checklist.WithoutContrast,
		LogFile:         DefaultLogFile,
		LogLevel:        DefaultLogLevel,
	}
}

// Package logging writes structured JSON logs for crm-sync to rotating files.
package logging

import (
	"os"
	"path/filepath"

	"github.com/fisto/crm-sync/internal/config"
)

// Config holds logging configuration.
type Config struct {
	// Enabled turns file logging on.
	Enabled bool
	// Level is the minimum level written.
	Level string
	// MaxFiles bounds how many log files are kept in the log directory.
	MaxFiles int
	// Command names the subcommand being run; it ends up in the file name.
	Command string
	PID     int
}

// DefaultConfig returns a disabled Config at info level.
func DefaultConfig() Config {
	return Config{
		Enabled:  false,
		Level:    "info",
		MaxFiles: 10,
		Command:  filepath.Base(os.Args[0]),
		PID:      os.Getpid(),
	}
}

// FromGlobalConfig builds a Config from the loaded configuration.
// The debug flag forces debug level; quiet forces error level unless debug is also set.
func FromGlobalConfig() Config {
	cfg := DefaultConfig()
	cfg.Enabled = config.GetBool("logging_enabled", false)
	cfg.Level = config.Get("logging_level", "info")
	cfg.MaxFiles = config.GetInt("logging_max_files", 10)
	switch {
	case config.GetBool("debug", false):
		cfg.Level = "debug"
	case config.GetBool("quiet", false):
		cfg.Level = "error"
	}
	return cfg
}

// LogDir returns <state_dir>/logs when it is writable, otherwise
// <tmp>/crm-sync/logs.
func LogDir() (string, error) {
	if stateDir := config.Get("state_dir", ""); stateDir != "" {
		dir := filepath.Join(stateDir, "logs")
		if err := os.MkdirAll(dir, 0700); err == nil && writable(dir) {
			return dir, nil
		}
	}
	fallback := filepath.Join(os.TempDir(), "crm-sync", "logs")
	if err := os.MkdirAll(fallback, 0700); err != nil {
		return "", err
	}
	return fallback, nil
}

func writable(dir string) bool {
	probe := filepath.Join(dir, ".write_test")
	f, err := os.Create(probe)
	if err != nil {
		return false
	}
	f.Close()
	os.Remove(probe)
	return true
}

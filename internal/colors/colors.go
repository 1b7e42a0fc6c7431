// Package colors provides color console output for crm-sync.
package colors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Color constants
const (
	Red    = "\033[0;31m"
	Green  = "\033[0;32m"
	Yellow = "\033[1;33m"
	Blue   = "\033[0;34m"
	Cyan   = "\033[0;36m"
	Reset  = "\033[0m"
)

const checkmark = "✓"

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	debugEnabled    = false
	inErrorHandling = false
	errorMutex      sync.RWMutex
	logger          Logger
	loggerMu        sync.RWMutex

	outMu  sync.RWMutex
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func init() {
	if val := os.Getenv("CRM_SYNC_DEBUG"); val == "true" || val == "1" {
		debugEnabled = true
	}
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

// SetLogger sets the structured logger to mirror console output.
func SetLogger(l Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

// SetOutput redirects console output. Nil writers restore the process defaults.
func SetOutput(out, errOut io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	stdout, stderr = out, errOut
}

func writers() (io.Writer, io.Writer) {
	outMu.RLock()
	defer outMu.RUnlock()
	return stdout, stderr
}

func currentLogger() Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// errorFallback writes without colors to avoid recursion.
func errorFallback(msg string) {
	_, errOut := writers()
	fmt.Fprintf(errOut, "%s\n", msg)
}

// emit writes a formatted line and reports write failures once through Warning.
func emit(w io.Writer, kind, format string, args ...any) {
	_, err := fmt.Fprintf(w, format, args...)
	if err == nil {
		return
	}

	errorMutex.RLock()
	alreadyHandling := inErrorHandling
	errorMutex.RUnlock()
	if alreadyHandling {
		errorFallback("Warning: failed to print " + kind + " message: " + err.Error())
		return
	}

	errorMutex.Lock()
	inErrorHandling = true
	errorMutex.Unlock()
	defer func() {
		errorMutex.Lock()
		inErrorHandling = false
		errorMutex.Unlock()
	}()
	Warning("failed to print " + kind + " message: " + err.Error())
}

// Error outputs an error message to stderr.
func Error(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Error(msg)
	}
	_, errOut := writers()
	emit(errOut, "error", "%sError:%s %s%s\n", Red, Reset, msg, Reset)
}

// Success outputs a success message to stdout.
func Success(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Info(msg, "type", "success")
	}
	out, _ := writers()
	emit(out, "success", "%s%s%s %s%s\n", Green, checkmark, Reset, msg, Reset)
}

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Warn(msg)
	}
	_, errOut := writers()
	emit(errOut, "warning", "%sWarning:%s %s%s\n", Yellow, Reset, msg, Reset)
}

// Info outputs an informational message to stdout.
func Info(msgs ...string) {
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Info(msg)
	}
	out, _ := writers()
	emit(out, "info", "%s%s%s\n", Blue, msg, Reset)
}

// Debug outputs a debug message to stderr if debug is enabled.
func Debug(msgs ...string) {
	if !debugEnabled {
		return
	}
	msg := strings.Join(msgs, " ")
	if l := currentLogger(); l != nil {
		l.Debug(msg)
	}
	_, errOut := writers()
	emit(errOut, "debug", "%sDebug:%s %s%s\n", Cyan, Reset, msg, Reset)
}

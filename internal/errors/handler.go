// Package errors routes user-facing failures and notices to the console or the TUI.
package errors

import "sync"

// ErrorHandler receives user-facing messages from the sync layer.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput is the console sink used by CLIHandler.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// CLIHandler prints messages to the console. When quiet, only errors and
// warnings are shown.
type CLIHandler struct {
	colors ColorOutput
	quiet  bool

	mu         sync.Mutex
	inHandling bool
}

var _ ErrorHandler = (*CLIHandler)(nil)

func NewCLIHandler(colors ColorOutput) *CLIHandler {
	return &CLIHandler{colors: colors}
}

// SetQuiet suppresses Info and Success output.
func (h *CLIHandler) SetQuiet(quiet bool) {
	h.mu.Lock()
	h.quiet = quiet
	h.mu.Unlock()
}

func (h *CLIHandler) isQuiet() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.quiet
}

// Error prints msg. A nested Error raised while printing goes straight to the sink.
func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	if h.inHandling {
		h.mu.Unlock()
		h.colors.Error(msg)
		return
	}
	h.inHandling = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.inHandling = false
		h.mu.Unlock()
	}()
	h.colors.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	h.colors.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	if h.isQuiet() {
		return
	}
	h.colors.Info(msg)
}

func (h *CLIHandler) Success(msg string) {
	if h.isQuiet() {
		return
	}
	h.colors.Success(msg)
}

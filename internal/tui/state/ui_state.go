package state

import (
	"github.com/charmbracelet/bubbles/viewport"
)

// UIState holds the viewport, terminal size and list cursor.
type UIState struct {
	viewport viewport.Model
	width    int
	height   int
	cursor   int
}

// NewUIState creates a new UIState instance with default values.
func NewUIState() *UIState {
	return &UIState{
		viewport: viewport.New(defaultViewportWidth, defaultViewportHeight-chromeLines),
		width:    defaultViewportWidth,
		height:   defaultViewportHeight,
	}
}

// GetViewport returns the current viewport model.
func (u *UIState) GetViewport() *viewport.Model {
	return &u.viewport
}

// GetWidth returns the current width of the UI.
func (u *UIState) GetWidth() int {
	return u.width
}

// GetHeight returns the current height of the UI.
func (u *UIState) GetHeight() int {
	return u.height
}

// SetSize records the terminal size and resizes the viewport.
func (u *UIState) SetSize(width, height int) {
	if width <= 0 {
		width = defaultViewportWidth
	}
	if height <= 0 {
		height = defaultViewportHeight
	}
	u.width, u.height = width, height
	vh := height - chromeLines
	if vh < 1 {
		vh = 1
	}
	u.viewport.Width = width
	u.viewport.Height = vh
}

// GetCursor returns the current cursor position.
func (u *UIState) GetCursor() int {
	return u.cursor
}

// SetCursor updates the cursor position.
func (u *UIState) SetCursor(cursor int) {
	u.cursor = cursor
	if u.cursor < 0 {
		u.cursor = 0
	}
}

// MoveCursorUp moves the cursor up one position if possible.
func (u *UIState) MoveCursorUp() {
	if u.cursor > 0 {
		u.cursor--
	}
}

// MoveCursorDown moves the cursor down one position if possible.
func (u *UIState) MoveCursorDown(listLen int) {
	if u.cursor < listLen-1 {
		u.cursor++
	}
}

// AdjustCursorBounds ensures the cursor is within valid bounds.
func (u *UIState) AdjustCursorBounds(listLen int) {
	if listLen == 0 || u.cursor < 0 {
		u.cursor = 0
		return
	}
	if u.cursor >= listLen {
		u.cursor = listLen - 1
	}
}

// EnsureCursorVisible scrolls the viewport so the cursor row is shown.
func (u *UIState) EnsureCursorVisible() {
	offset := u.viewport.YOffset
	height := u.viewport.Height
	switch {
	case u.cursor < offset:
		u.viewport.SetYOffset(u.cursor)
	case u.cursor >= offset+height:
		u.viewport.SetYOffset(u.cursor - height + 1)
	}
}

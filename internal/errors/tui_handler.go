package errors

import (
	"sync"
	"time"
)

// DefaultMessageLimit bounds how many messages a TUIHandler retains.
const DefaultMessageLimit = 50

// MessageType classifies a TUI message for styling.
type MessageType int

const (
	MessageTypeError MessageType = iota
	MessageTypeWarning
	MessageTypeInfo
	MessageTypeSuccess
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeError:
		return "error"
	case MessageTypeWarning:
		return "warning"
	case MessageTypeSuccess:
		return "success"
	default:
		return "info"
	}
}

// Message is a single toast shown in the TUI status bar.
type Message struct {
	Text      string
	Type      MessageType
	Timestamp time.Time
}

// Expired reports whether the message is older than ttl at now.
func (m Message) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(m.Timestamp) > ttl
}

// TUIHandler keeps recent messages for the TUI and forwards each one to onMessage.
// onMessage runs outside the handler lock.
type TUIHandler struct {
	mu        sync.RWMutex
	messages  []Message
	limit     int
	onMessage func(Message)
	now       func() time.Time
}

var _ ErrorHandler = (*TUIHandler)(nil)

func NewTUIHandler(onMessage func(Message)) *TUIHandler {
	return &TUIHandler{
		limit:     DefaultMessageLimit,
		onMessage: onMessage,
		now:       time.Now,
	}
}

func (h *TUIHandler) Error(msg string)   { h.add(msg, MessageTypeError) }
func (h *TUIHandler) Warning(msg string) { h.add(msg, MessageTypeWarning) }
func (h *TUIHandler) Info(msg string)    { h.add(msg, MessageTypeInfo) }
func (h *TUIHandler) Success(msg string) { h.add(msg, MessageTypeSuccess) }

func (h *TUIHandler) add(text string, t MessageType) {
	h.mu.Lock()
	msg := Message{Text: text, Type: t, Timestamp: h.now()}
	h.messages = append(h.messages, msg)
	if over := len(h.messages) - h.limit; over > 0 {
		h.messages = append([]Message(nil), h.messages[over:]...)
	}
	cb := h.onMessage
	h.mu.Unlock()

	if cb != nil {
		cb(msg)
	}
}

// SetCallback replaces the function invoked for each new message.
func (h *TUIHandler) SetCallback(fn func(Message)) {
	h.mu.Lock()
	h.onMessage = fn
	h.mu.Unlock()
}

// GetLatest returns the newest message.
func (h *TUIHandler) GetLatest() (Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.messages) == 0 {
		return Message{}, false
	}
	return h.messages[len(h.messages)-1], true
}

// Active returns the newest message if it is younger than ttl.
func (h *TUIHandler) Active(ttl time.Duration) (Message, bool) {
	msg, ok := h.GetLatest()
	if !ok || msg.Expired(h.now(), ttl) {
		return Message{}, false
	}
	return msg, true
}

func (h *TUIHandler) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = nil
}

// GetAll returns a copy of the retained messages, oldest first.
func (h *TUIHandler) GetAll() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

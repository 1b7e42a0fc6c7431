package errors

import (
	"bytes"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/fisto/crm-sync/internal/colors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	kind string
	msg  string
}

type mockColorOutput struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (m *mockColorOutput) record(kind string, msgs []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := ""
	if len(msgs) > 0 {
		msg = msgs[0]
	}
	m.calls = append(m.calls, recordedCall{kind: kind, msg: msg})
}

func (m *mockColorOutput) Error(msgs ...string)   { m.record("error", msgs) }
func (m *mockColorOutput) Warning(msgs ...string) { m.record("warning", msgs) }
func (m *mockColorOutput) Info(msgs ...string)    { m.record("info", msgs) }
func (m *mockColorOutput) Success(msgs ...string) { m.record("success", msgs) }

func (m *mockColorOutput) recorded() []recordedCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]recordedCall(nil), m.calls...)
}

func TestCLIHandlerRoutesByKind(t *testing.T) {
	mock := &mockColorOutput{}
	handler := NewCLIHandler(mock)

	handler.Error("failed to load employees")
	handler.Warning("retrying")
	handler.Info("Loaded 3 employees")
	handler.Success("Employee deleted")

	assert.Equal(t, []recordedCall{
		{"error", "failed to load employees"},
		{"warning", "retrying"},
		{"info", "Loaded 3 employees"},
		{"success", "Employee deleted"},
	}, mock.recorded())
}

func TestCLIHandlerQuietSuppressesNotices(t *testing.T) {
	mock := &mockColorOutput{}
	handler := NewCLIHandler(mock)
	handler.SetQuiet(true)

	handler.Info("Loaded 3 employees")
	handler.Success("Employee deleted")
	handler.Warning("retrying")
	handler.Error("boom")

	assert.Equal(t, []recordedCall{{"warning", "retrying"}, {"error", "boom"}}, mock.recorded())
}

func TestCLIHandlerErrorWhenAlreadyHandling(t *testing.T) {
	mock := &mockColorOutput{}
	handler := NewCLIHandler(mock)

	handler.inHandling = true
	handler.Error("nested")

	assert.Equal(t, []recordedCall{{"error", "nested"}}, mock.recorded())
	assert.True(t, handler.inHandling, "fast path leaves the flag alone")

	handler.inHandling = false
	handler.Error("normal")
	assert.False(t, handler.inHandling)
}

func TestDefaultCLIHandlerPrintsThroughColors(t *testing.T) {
	var out, errOut bytes.Buffer
	colors.SetOutput(&out, &errOut)
	t.Cleanup(func() { colors.SetOutput(nil, nil) })

	handler := NewDefaultCLIHandler()
	handler.Info("Loaded 2 employees")
	handler.Error("Delete failed")

	assert.Contains(t, out.String(), "Loaded 2 employees")
	assert.Contains(t, errOut.String(), "Delete failed")
}

func TestTUIHandlerStoresAndForwards(t *testing.T) {
	var got []Message
	handler := NewTUIHandler(func(msg Message) { got = append(got, msg) })

	handler.Error("error 1")
	handler.Warning("warning 2")
	handler.Info("info 3")
	handler.Success("success 4")

	require.Len(t, got, 4)
	all := handler.GetAll()
	require.Len(t, all, 4)
	for i, want := range []MessageType{MessageTypeError, MessageTypeWarning, MessageTypeInfo, MessageTypeSuccess} {
		assert.Equal(t, want, all[i].Type)
		assert.Equal(t, got[i], all[i])
		assert.False(t, all[i].Timestamp.IsZero())
	}

	latest, ok := handler.GetLatest()
	require.True(t, ok)
	assert.Equal(t, "success 4", latest.Text)

	all[0].Text = "modified"
	assert.Equal(t, "error 1", handler.GetAll()[0].Text)
}

func TestTUIHandlerClear(t *testing.T) {
	handler := NewTUIHandler(nil)
	handler.Info("a")
	handler.Clear()

	assert.Empty(t, handler.GetAll())
	_, ok := handler.GetLatest()
	assert.False(t, ok)
}

func TestTUIHandlerLimit(t *testing.T) {
	handler := NewTUIHandler(nil)
	for i := 0; i < DefaultMessageLimit+5; i++ {
		handler.Info(fmt.Sprintf("msg %d", i))
	}

	all := handler.GetAll()
	require.Len(t, all, DefaultMessageLimit)
	assert.Equal(t, "msg 5", all[0].Text)
	assert.Equal(t, fmt.Sprintf("msg %d", DefaultMessageLimit+4), all[len(all)-1].Text)
}

func TestTUIHandlerActiveExpires(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	handler := NewTUIHandler(nil)
	handler.now = func() time.Time { return now }

	_, ok := handler.Active(3 * time.Second)
	assert.False(t, ok)

	handler.Success("Employee deleted")
	msg, ok := handler.Active(3 * time.Second)
	require.True(t, ok)
	assert.Equal(t, "Employee deleted", msg.Text)

	now = now.Add(4 * time.Second)
	_, ok = handler.Active(3 * time.Second)
	assert.False(t, ok)
}

func TestTUIHandlerSetCallbackCanReenter(t *testing.T) {
	handler := NewTUIHandler(nil)
	var latest Message
	handler.SetCallback(func(Message) {
		latest, _ = handler.GetLatest()
	})

	handler.Warning("Connection failed")
	assert.Equal(t, "Connection failed", latest.Text)
}

func TestMessageTypeString(t *testing.T) {
	assert.Equal(t, "error", MessageTypeError.String())
	assert.Equal(t, "warning", MessageTypeWarning.String())
	assert.Equal(t, "info", MessageTypeInfo.String())
	assert.Equal(t, "success", MessageTypeSuccess.String())
}

func TestTUIHandlerConcurrentAccess(t *testing.T) {
	handler := NewTUIHandler(nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				handler.Info("message")
				handler.GetLatest()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, handler.GetAll(), DefaultMessageLimit)
}

package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fisto/crm-sync/internal/crmapi"
	"github.com/fisto/crm-sync/internal/domain"
	"github.com/fisto/crm-sync/internal/errors"
	"github.com/fisto/crm-sync/internal/syncstore"
	"github.com/fisto/crm-sync/internal/tui/state"
)

type emptyAPI struct{}

func (emptyAPI) FetchEmployees(context.Context) (crmapi.FetchResult, error) {
	return crmapi.FetchResult{Employees: []domain.Employee{{ID: "E1"}}}, nil
}
func (emptyAPI) DeleteEmployee(context.Context, string) error                { return nil }
func (emptyAPI) RegisterEmployee(context.Context, domain.Registration) error { return nil }
func (emptyAPI) Ping(context.Context) error                                  { return nil }

type chanSender struct{ ch chan tea.Msg }

func (c chanSender) Send(msg tea.Msg) { c.ch <- msg }

type fakeRunner struct {
	sender chanSender
	model  tea.Model
	during func()
	err    error
}

func (f *fakeRunner) Run(model tea.Model, onStart func(state.Sender)) error {
	f.model = model
	onStart(f.sender)
	if f.during != nil {
		f.during()
	}
	return f.err
}

func TestRunAttachesSinkAndNotifier(t *testing.T) {
	handler := errors.NewTUIHandler(nil)
	store := syncstore.New(emptyAPI{}, syncstore.WithNotifier(handler))
	defer store.Close()

	runner := &fakeRunner{sender: chanSender{ch: make(chan tea.Msg, 8)}}
	var received []tea.Msg
	runner.during = func() {
		_, err := store.Refresh(context.Background(), false)
		require.NoError(t, err)
		handler.Info("hello")
		deadline := time.After(2 * time.Second)
		for len(received) < 3 {
			select {
			case msg := <-runner.sender.ch:
				received = append(received, msg)
			case <-deadline:
				t.Fatal("messages not forwarded")
			}
		}
	}

	require.NoError(t, NewClient(runner).Run(context.Background(), Deps{Store: store, Handler: handler}))
	assert.IsType(t, &state.Model{}, runner.model)

	var views, statuses int
	for _, msg := range received {
		switch msg.(type) {
		case state.ViewMsg:
			views++
		case state.StatusMsg:
			statuses++
		}
	}
	assert.Equal(t, 2, views)
	assert.Equal(t, 1, statuses)

	// detached after exit
	store.SetSink(syncstore.SinkFunc(func(syncstore.View) {}))
	handler.Info("after")
	select {
	case msg := <-runner.sender.ch:
		t.Fatalf("unexpected message after exit: %#v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRunRequiresStore(t *testing.T) {
	err := NewClient(&fakeRunner{}).Run(context.Background(), Deps{})
	assert.Error(t, err)
}

func TestRunReturnsRunnerError(t *testing.T) {
	store := syncstore.New(emptyAPI{})
	defer store.Close()
	runner := &fakeRunner{sender: chanSender{ch: make(chan tea.Msg, 8)}, err: fmt.Errorf("no tty")}
	err := NewClient(runner).Run(context.Background(), Deps{Store: store})
	assert.EqualError(t, err, "no tty")
}

func TestNewClientDefaultsRunner(t *testing.T) {
	c := NewClient(nil)
	assert.IsType(t, &DefaultProgramRunner{}, c.runner)
}

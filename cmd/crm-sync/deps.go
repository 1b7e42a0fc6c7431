package main

import (
	"sync"

	"github.com/fisto/crm-sync/internal/clients"
	"github.com/fisto/crm-sync/internal/config"
	"github.com/fisto/crm-sync/internal/crmapi"
	"github.com/fisto/crm-sync/internal/errors"
	"github.com/fisto/crm-sync/internal/logging"
	"github.com/fisto/crm-sync/internal/metrics"
	"github.com/fisto/crm-sync/internal/syncstore"
)

// backend builds the collaborators of a command. Commands ask for them inside
// RunE, after the root command has loaded the configuration.
type backend interface {
	Settings() config.SyncSettings
	Metrics() *metrics.Collector
	NewStore(notifier errors.ErrorHandler) (*syncstore.Store, error)
	LoadClients(path string) (*clients.Book, error)
}

// configBackend is the production backend driven by internal/config.
type configBackend struct {
	once      sync.Once
	collector *metrics.Collector
}

var _ backend = (*configBackend)(nil)

func (b *configBackend) Settings() config.SyncSettings {
	return config.Sync()
}

func (b *configBackend) Metrics() *metrics.Collector {
	b.once.Do(func() {
		b.collector = metrics.New()
	})
	return b.collector
}

func (b *configBackend) NewStore(notifier errors.ErrorHandler) (*syncstore.Store, error) {
	s := b.Settings()
	log := logging.GetGlobal()
	api, err := crmapi.NewClient(crmapi.Options{
		BaseURL:          s.BaseURL,
		FetchEndpoint:    s.FetchEndpoint,
		DeleteEndpoint:   s.DeleteEndpoint,
		RegisterEndpoint: s.RegisterEndpoint,
		MaxRetries:       s.MaxRetries,
		RetryDelay:       s.RetryDelay,
		Timeout:          s.RequestTimeout,
		Logger:           log,
		Recorder:         b.Metrics(),
	})
	if err != nil {
		return nil, err
	}
	return syncstore.New(api,
		syncstore.WithLogger(log),
		syncstore.WithMetrics(b.Metrics()),
		syncstore.WithNotifier(notifier),
	), nil
}

func (b *configBackend) LoadClients(path string) (*clients.Book, error) {
	if path == "" {
		path = b.Settings().ClientsFile
	}
	return clients.LoadFile(path)
}

var appBackend = &configBackend{}

package metrics

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fisto/crm-sync/internal/logging"
	"github.com/fisto/crm-sync/internal/version"
)

// HealthFunc reports the current snapshot size and when it was last refreshed.
type HealthFunc func() (employees int, updatedAt time.Time)

// HealthResponse is the body served at /healthz.
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Employees int    `json:"employees"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// NewMux routes /metrics to the collector and /healthz to health.
func NewMux(c *Collector, health HealthFunc) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{Status: "ok", Version: version.String()}
		if health != nil {
			n, at := health()
			resp.Employees = n
			if !at.IsZero() {
				resp.UpdatedAt = at.UTC().Format(time.RFC3339)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})
	return mux
}

// StartServer serves NewMux on addr in the background. listenAndServe is
// usually (*http.Server).ListenAndServe; tests pass a stub.
func StartServer(addr string, c *Collector, health HealthFunc, listenAndServe func(*http.Server) error, log logging.Logger) *http.Server {
	if log == nil {
		log = logging.Nop()
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           NewMux(c, health),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := listenAndServe(server); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Debug("metrics server closed")
			} else {
				log.Error("metrics server error", "error", err.Error())
			}
		}
	}()
	return server
}

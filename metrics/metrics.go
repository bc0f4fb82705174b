// Package metrics exposes the store's operational counters and serves them
// on a dedicated listener in Prometheus text format.
package metrics

import (
	"context"
	"fmt"
	"net/http"

	vm "github.com/VictoriaMetrics/metrics"
)

var (
	setupTotal      = vm.NewCounter(`oramd_setup_total`)
	readTotal       = vm.NewCounter(`oramd_accesses_total{op="read"}`)
	writeTotal      = vm.NewCounter(`oramd_accesses_total{op="write"}`)
	errorsTotal     = vm.NewCounter(`oramd_access_errors_total`)
	stashAlarmTotal = vm.NewCounter(`oramd_stash_alarms_total`)
	stashSize       = vm.NewHistogram(`oramd_stash_size`)
)

// RecordSetup counts a successful store initialization.
func RecordSetup() {
	setupTotal.Inc()
}

// RecordRead counts one completed read access.
func RecordRead() {
	readTotal.Inc()
}

// RecordWrite counts one completed write access.
func RecordWrite() {
	writeTotal.Inc()
}

// RecordError counts a failed operation.
func RecordError() {
	errorsTotal.Inc()
}

// ObserveStash records stash occupancy after an access and counts alarms.
func ObserveStash(size int, alarm bool) {
	stashSize.Update(float64(size))
	if alarm {
		stashAlarmTotal.Inc()
	}
}

// MetricsServer serves /metrics on its own address, separate from the API
// listener. A server constructed with an empty address is a no-op.
type MetricsServer struct {
	srv *http.Server
}

// New creates a metrics server for the given listen address.
func New(packageName, listenAddr string) (*MetricsServer, error) {
	if listenAddr == "" {
		return &MetricsServer{}, nil
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "# %s\n", packageName)
		vm.WritePrometheus(w, true)
	})

	return &MetricsServer{
		srv: &http.Server{Addr: listenAddr, Handler: mux},
	}, nil
}

// ListenAndServe blocks serving metrics until shutdown.
func (m *MetricsServer) ListenAndServe() error {
	if m.srv == nil {
		return nil
	}
	return m.srv.ListenAndServe()
}

// Shutdown gracefully stops the metrics listener.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	if m.srv == nil {
		return nil
	}
	return m.srv.Shutdown(ctx)
}

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"codeberg.org/mutker/armoryd/internal/collector"
	"codeberg.org/mutker/armoryd/internal/errors"
	"codeberg.org/mutker/armoryd/internal/logger"
	"codeberg.org/mutker/armoryd/internal/observability"
	"codeberg.org/mutker/armoryd/internal/telemetry"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// StatusResponse is the JSON response for the /status endpoint.
type StatusResponse struct {
	Status      string    `json:"status"`
	Uptime      string    `json:"uptime"`
	Cycles      int64     `json:"cycles"`
	Failures    int64     `json:"failures"`
	LastSuccess time.Time `json:"last_success"`
	LastError   string    `json:"last_error,omitempty"`
	Characters  int       `json:"characters"`
	Realms      int       `json:"realms"`
}

// startServer serves the health, metrics, status and snapshot
// endpoints on the configured listen address.
func startServer(poller *collector.Collector) *http.Server {
	started := time.Now()

	mux := http.NewServeMux()

	// Liveness: healthy once a snapshot exists
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		if poller.Latest() == nil {
			http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Prometheus metrics
	mux.Handle("/metrics", observability.Handler())

	mux.HandleFunc("/status", func(w http.ResponseWriter, _ *http.Request) {
		state := poller.CycleState()

		resp := StatusResponse{
			Status:      "running",
			Uptime:      time.Since(started).String(),
			Cycles:      state.Cycles,
			Failures:    state.Failures,
			LastSuccess: state.LastSuccess,
			LastError:   state.LastError,
		}
		if snapshot := poller.Latest(); snapshot != nil {
			resp.Characters = len(snapshot.Characters)
			resp.Realms = len(snapshot.Realms)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})

	// Display surface: the flattened latest snapshot
	mux.HandleFunc("/snapshot", func(w http.ResponseWriter, _ *http.Request) {
		snapshot := poller.Latest()
		if snapshot == nil {
			http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snapshot.Flatten())
	})

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		logger.Info().Str("listen", cfg.Listen).Msg("HTTP server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("HTTP server failed")
		}
	}()

	return srv
}

func cleanup(srv *http.Server, recorder telemetry.Recorder) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to stop HTTP server")
	}
	if err := recorder.Close(); err != nil {
		logger.Error().Err(err).Msg("failed to close telemetry")
	}
	logger.Info().Msg("Exiting...")
}

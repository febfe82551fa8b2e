// Package web serves the browser dashboard: an embedded HTML page, a JSON
// snapshot endpoint, an SSE stream and a manual refresh trigger.
package web

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/coinwatchd/coinwatch/internal/domain"
)

const (
	snapshotPollInterval = 2 * time.Second
	heartbeatInterval    = 30 * time.Second
)

type snapshotReader interface {
	Current() domain.Snapshot
}

type refreshTrigger interface {
	TriggerRefresh()
}

// Server exposes HTTP endpoints serving the HTML UI, the snapshot API and
// the SSE stream.
type Server struct {
	Addr      string
	Store     snapshotReader
	Refresher refreshTrigger
	Logger    *zap.Logger
}

// NewServer creates a new dashboard server.
func NewServer(addr string, store snapshotReader, refresher refreshTrigger, logger *zap.Logger) *Server {
	return &Server{Addr: addr, Store: store, Refresher: refresher, Logger: logger}
}

// snapshotPayload is what /api/snapshot and the SSE stream emit: the snapshot
// plus aggregates computed over its records.
type snapshotPayload struct {
	domain.Snapshot
	Stats domain.MarketStats `json:"stats"`
}

func (s *Server) mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/snapshot", s.handleSnapshot)
	mux.HandleFunc("/api/snapshot/stream", s.handleStream)
	mux.HandleFunc("/api/refresh", s.handleRefresh)
	return mux
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	server := &http.Server{
		Addr:              s.Addr,
		Handler:           s.mux(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.Logger.Info("dashboard listening", zap.String("addr", s.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// StartWithAutoTLS runs an HTTPS server with automatic TLS certificates via
// ACME, plus an HTTP server on port 80 for HTTP-01 challenges.
func (s *Server) StartWithAutoTLS(ctx context.Context, domain, cacheDir string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if domain == "" {
		return fmt.Errorf("no domain provided for automatic TLS")
	}
	if cacheDir == "" {
		cacheDir = "cert-cache"
	}

	manager := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(domain),
		Cache:      autocert.DirCache(cacheDir),
	}

	httpSrv := &http.Server{
		Addr:              ":80",
		Handler:           manager.HTTPHandler(nil),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	tlsConfig := manager.TLSConfig()
	tlsConfig.MinVersion = tls.VersionTLS12

	httpsSrv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.mux(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       120 * time.Second,
		TLSConfig:         tlsConfig,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Warn("acme http server shutdown", zap.Error(err))
		}
		if err := httpsSrv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Warn("https server shutdown", zap.Error(err))
		}
	}()

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("acme http server", zap.Error(err))
		}
	}()

	s.Logger.Info("dashboard listening with TLS", zap.String("addr", s.Addr), zap.String("domain", domain))
	if err := httpsSrv.ListenAndServeTLS("", ""); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := s.Store.Current()
	payload := snapshotPayload{Snapshot: snap, Stats: domain.ComputeStats(snap.Records)}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.Logger.Warn("encode snapshot response", zap.Error(err))
	}
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.Refresher.TriggerRefresh()
	w.WriteHeader(http.StatusAccepted)
	fmt.Fprint(w, `{"status":"refresh scheduled"}`)
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// comment heartbeat so proxies keep the connection open
	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	pollTicker := time.NewTicker(snapshotPollInterval)
	defer pollTicker.Stop()

	var lastSent streamState
	var sentAny bool
	send := func() {
		snap := s.Store.Current()
		state := streamStateOf(snap)
		if sentAny && state == lastSent {
			return
		}
		payload, err := json.Marshal(snapshotPayload{Snapshot: snap, Stats: domain.ComputeStats(snap.Records)})
		if err != nil {
			s.Logger.Warn("encode snapshot event", zap.Error(err))
			return
		}
		fmt.Fprintf(w, "event: snapshot\n")
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
		lastSent = state
		sentAny = true
	}

	send()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprintf(w, ": ping\n\n")
			flusher.Flush()
		case <-pollTicker.C:
			send()
		}
	}
}

// streamState is the comparable part of a snapshot used to decide whether the
// SSE stream has something new to push.
type streamState struct {
	lastUpdated time.Time
	refreshing  bool
	lastError   string
	source      domain.Source
}

func streamStateOf(snap domain.Snapshot) streamState {
	return streamState{
		lastUpdated: snap.LastUpdated,
		refreshing:  snap.Refreshing,
		lastError:   snap.LastError,
		source:      snap.Source,
	}
}

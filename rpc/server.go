// Package rpc exposes deploy script progress over a websocket so a
// dashboard or a second terminal can follow a run, plus the recorded
// deployment history as JSON.
package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/adil14788/Epic-game/events"
	"github.com/adil14788/Epic-game/log"
)

type ProgressServer struct {
	addr   string
	bus    *events.EventBus
	hub    *WebSocketHub
	srv    *http.Server
	ln     net.Listener
	sub    <-chan events.Event
	fwd    chan struct{}
	store  DeploymentLister
	logger *log.Logger
}

func NewProgressServer(addr string, bus *events.EventBus, logger *log.Logger) *ProgressServer {
	return &ProgressServer{
		addr:   addr,
		bus:    bus,
		hub:    NewWebSocketHub(logger),
		logger: logger,
	}
}

// WithDeployments also serves the deployment history on /deployments.
func (s *ProgressServer) WithDeployments(store DeploymentLister) *ProgressServer {
	s.store = store
	return s
}

// Start listens on the configured address and begins forwarding events.
func (s *ProgressServer) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("progress listen %s: %w", s.addr, err)
	}
	s.ln = ln

	mux := http.NewServeMux()
	mux.HandleFunc("/progress", s.hub.HandleWS)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if s.store != nil {
		mux.HandleFunc("/deployments", handleDeployments(s.store))
	}
	s.srv = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute,
	}

	go s.hub.Run()

	s.sub = s.bus.Subscribe()
	s.fwd = make(chan struct{})
	go s.forward()

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("progress server: " + err.Error())
		}
	}()

	s.logger.Info("progress feed on ws://" + ln.Addr().String() + "/progress")
	return nil
}

func (s *ProgressServer) forward() {
	defer close(s.fwd)
	for ev := range s.sub {
		s.hub.Broadcast(WSMessage{Type: string(ev.Kind), Data: ev})
	}
}

// Addr is the bound listen address, valid after Start.
func (s *ProgressServer) Addr() string {
	if s.ln == nil {
		return s.addr
	}
	return s.ln.Addr().String()
}

func (s *ProgressServer) Hub() *WebSocketHub {
	return s.hub
}

func (s *ProgressServer) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	// events already on the subscription still reach the clients
	s.bus.Unsubscribe(s.sub)
	select {
	case <-s.fwd:
	case <-ctx.Done():
	}
	s.hub.Stop()
	return s.srv.Shutdown(ctx)
}

package server

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Server wraps an *http.Server to provide start/shutdown lifecycle.
type Server struct {
	mu         sync.Mutex
	httpServer *http.Server
	listener   net.Listener
}

const (
	maxHeaderBytes      = 1 << 20 // 1 MB
	readHeaderTimeout   = 10 * time.Second
	idleTimeout         = 60 * time.Second
	defaultWriteTimeout = 10 * time.Minute
)

// newHTTPServer builds a configured *http.Server for the given address and handler.
// The write timeout must cover a full compile and flash.
func newHTTPServer(addr string, handler http.Handler, writeTimeout time.Duration) *http.Server {
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		MaxHeaderBytes:    maxHeaderBytes,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}

// normalizeAddr accepts "5000", ":5000" or "host:5000".
func normalizeAddr(addr string) string {
	if addr == "" {
		return ""
	}
	if strings.Contains(addr, ":") {
		return addr
	}
	return ":" + addr
}

// Run listens on addr and serves handler until Shutdown. It returns
// http.ErrServerClosed after a graceful shutdown.
func (s *Server) Run(addr string, handler http.Handler, writeTimeout time.Duration) error {
	hs := newHTTPServer(normalizeAddr(addr), handler, writeTimeout)
	ln, err := net.Listen("tcp", hs.Addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.httpServer, s.listener = hs, ln
	s.mu.Unlock()
	return hs.Serve(ln)
}

// Addr is the bound listener address, useful when port 0 was requested.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown gracefully stops the server, allowing in-flight requests to complete.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	hs := s.httpServer
	s.mu.Unlock()
	if hs == nil {
		return nil
	}
	return hs.Shutdown(ctx)
}

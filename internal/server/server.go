// Package server exposes the running game over WebSocket. Clients receive
// full state snapshots and send action messages; all game mutation happens
// in the engine, serialized through the runner.
package server

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lawnchairsociety/towerclimb/internal/config"
	"github.com/lawnchairsociety/towerclimb/internal/engine"
	"github.com/lawnchairsociety/towerclimb/internal/logger"
)

// broadcastInterval is how often connected clients receive a fresh
// snapshot independent of actions.
const broadcastInterval = time.Second

type Server struct {
	cfg    *config.ServerConfig
	engine *engine.Engine
	runner *engine.Runner

	mu      sync.Mutex
	clients map[*wsClient]struct{}

	httpServer *http.Server
}

// New creates a server around a runner. The runner's Run loop is the
// caller's responsibility; the server only reads and applies.
func New(cfg *config.ServerConfig, eng *engine.Engine, runner *engine.Runner) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		cfg:     cfg,
		engine:  eng,
		runner:  runner,
		clients: make(map[*wsClient]struct{}),
	}
}

// Start serves the WebSocket endpoint until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocketUpgrade)

	s.httpServer = &http.Server{
		Addr:    s.cfg.Listen.Address,
		Handler: mux,
	}

	go s.broadcastLoop(ctx)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(shutdownCtx)
		s.closeClients()
	}()

	logger.Info("WebSocket server listening", "address", s.cfg.Listen.Address)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// handleWebSocketUpgrade upgrades an HTTP connection to WebSocket.
func (s *Server) handleWebSocketUpgrade(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			allowed := s.cfg.WebSocket.IsOriginAllowed(origin, r.Host)
			if !allowed {
				logger.Warning("WebSocket connection rejected - origin not allowed",
					"origin", origin,
					"host", r.Host,
					"remote_addr", r.RemoteAddr)
			}
			return allowed
		},
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", "error", err)
		return
	}

	if s.cfg.WebSocket.MaxMessageSize > 0 {
		wsConn.SetReadLimit(s.cfg.WebSocket.MaxMessageSize)
	}

	go s.handleConnection(newWSClient(wsConn), getRealIP(r))
}

// handleConnection runs the read loop for one client.
func (s *Server) handleConnection(client *wsClient, clientIP string) {
	s.mu.Lock()
	s.clients[client] = struct{}{}
	s.mu.Unlock()

	logger.Info("Client connected", "client_ip", clientIP)

	defer func() {
		s.mu.Lock()
		delete(s.clients, client)
		s.mu.Unlock()
		client.Close()
		logger.Info("Client disconnected", "client_ip", clientIP)
	}()

	// Initial snapshot so the client can render immediately
	if err := client.SendJSON(s.snapshot()); err != nil {
		return
	}

	for {
		data, err := client.ReadMessage()
		if err != nil {
			return
		}

		msg, err := decodeAction(data)
		if err != nil {
			client.SendJSON(ErrorMessage{Type: "error", Message: err.Error()})
			continue
		}

		if err := s.dispatch(msg); err != nil {
			logger.Debug("Action rejected", "action", msg.Type, "error", err)
			client.SendJSON(ErrorMessage{Type: "error", Message: err.Error()})
			continue
		}

		// Push the post-action state back right away instead of waiting
		// for the broadcast tick
		s.broadcast()
	}
}

// broadcastLoop pushes snapshots to every connected client.
func (s *Server) broadcastLoop(ctx context.Context) {
	ticker := time.NewTicker(broadcastInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.broadcast()
		}
	}
}

func (s *Server) broadcast() {
	msg := s.snapshot()

	s.mu.Lock()
	clients := make([]*wsClient, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		if err := c.SendJSON(msg); err != nil {
			logger.Debug("Snapshot push failed", "remote_addr", c.RemoteAddr(), "error", err)
		}
	}
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.Close()
	}
	s.clients = make(map[*wsClient]struct{})
}

// getRealIP extracts the real client IP from an HTTP request.
// It checks X-Forwarded-For first (for reverse proxy setups), then
// falls back to the direct remote address.
func getRealIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// X-Forwarded-For can contain multiple IPs: "client, proxy1, proxy2"
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			clientIP := strings.TrimSpace(ips[0])
			if clientIP != "" {
				return clientIP
			}
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	return extractIP(r.RemoteAddr)
}

// extractIP strips the port from a host:port remote address.
func extractIP(remoteAddr string) string {
	if idx := strings.LastIndex(remoteAddr, ":"); idx != -1 {
		return remoteAddr[:idx]
	}
	return remoteAddr
}

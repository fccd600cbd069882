// Package server exposes one game session over HTTP and a websocket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/havfo/reversi/internal/board"
	"github.com/havfo/reversi/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server is the HTTP front-end of a session.
type Server struct {
	config  Config
	session *session.Session
	hub     *Hub
	logger  *log.Logger
	server  *http.Server
}

// New wires s to a fresh hub: every session change is pushed to the
// websocket clients.
func New(s *session.Session, config Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	srv := &Server{
		config:  config,
		session: s,
		hub:     NewHub(),
		logger:  logger,
	}
	s.OnChange(func(snap session.Snapshot) {
		srv.hub.Broadcast(wsMessage{Type: "status", Payload: mustMarshal(statusFromSnapshot(snap))})
	})

	return srv
}

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: s.logger, NoColor: true}))
	r.Use(middleware.Recoverer)

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Get("/api/status", s.handleStatus)
	r.Post("/api/start", s.handleStart)
	r.Post("/api/settings", s.handleSettings)
	r.Post("/api/move", s.handleMove)
	r.Get("/ws", s.serveWS)

	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusFromSnapshot(s.session.Snapshot()))
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var patch settingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		return
	}

	settings, err := patch.apply(s.session.Settings())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := s.session.ApplySettings(settings); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	s.session.Initialize()
	s.session.ScheduleComputer(nil)
	writeJSON(w, http.StatusOK, statusFromSnapshot(s.session.Snapshot()))
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	var patch settingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		return
	}

	settings, err := patch.apply(s.session.Settings())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := s.session.ApplySettings(settings); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	// switching to pvc, or handing the computer the side to move, starts it
	s.session.ScheduleComputer(nil)
	writeJSON(w, http.StatusOK, statusFromSnapshot(s.session.Snapshot()))
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var payload apiMove
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		return
	}

	if err := s.applyMove(payload); err != nil {
		writeJSON(w, moveErrorStatus(err), errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, statusFromSnapshot(s.session.Snapshot()))
}

// applyMove plays a human move and lets the computer answer. Player 0 means
// whoever is to move.
func (s *Server) applyMove(m apiMove) error {
	player := board.Cell(m.Player)
	if m.Player == 0 {
		player = s.session.CurrentPlayer()
	}

	if _, err := s.session.AttemptMove(m.Row, m.Col, player); err != nil {
		return err
	}
	s.session.ScheduleComputer(nil)

	return nil
}

// moveErrorStatus maps move rejections to HTTP codes: a bad square is the
// client's fault, everything else is a conflict with the game state.
func moveErrorStatus(err error) int {
	switch {
	case errors.Is(err, session.ErrIllegalMove):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNotYourTurn),
		errors.Is(err, session.ErrThinking),
		errors.Is(err, session.ErrGameOver),
		errors.Is(err, session.ErrNotStarted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("[server] websocket upgrade: %v", err)
		return
	}
	client := &Client{hub: s.hub, send: make(chan []byte, 16)}
	s.hub.Register(client)

	s.hub.SendTo(client, wsMessage{Type: "status", Payload: mustMarshal(statusFromSnapshot(s.session.Snapshot()))})

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			s.logger.Printf("[server] websocket write: %v", err)
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			s.hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "request_status":
			s.hub.SendTo(client, wsMessage{Type: "status", Payload: mustMarshal(statusFromSnapshot(s.session.Snapshot()))})
		case "ping":
			s.hub.SendTo(client, wsMessage{Type: "pong"})
		case "move":
			var m apiMove
			if err := json.Unmarshal(msg.Payload, &m); err != nil {
				s.hub.SendTo(client, wsMessage{Type: "error", Payload: mustMarshal(errorResponse{Error: "invalid payload"})})
				continue
			}
			// success is broadcast through the session listener
			if err := s.applyMove(m); err != nil {
				s.hub.SendTo(client, wsMessage{Type: "error", Payload: mustMarshal(errorResponse{Error: err.Error()})})
			}
		}
	}
}

func (s *Server) newHTTPServer() *http.Server {
	return &http.Server{
		Addr:         net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port)),
		Handler:      s.Routes(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// Shutdown disconnects websocket clients and drains open requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.CloseAll()
	if s.server == nil {
		return nil
	}

	return s.server.Shutdown(ctx)
}

// ListenAndServeWithGracefulShutdown serves until ctx is cancelled, then
// shuts down within the configured timeout.
func (s *Server) ListenAndServeWithGracefulShutdown(ctx context.Context) error {
	errChan := make(chan error, 1)
	s.server = s.newHTTPServer()
	s.logger.Printf("[server] listening on %s", s.server.Addr)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err, ok := <-errChan:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Printf("[server] shutdown requested: %v", context.Cause(ctx))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Printf("[server] stopped")

	return nil
}

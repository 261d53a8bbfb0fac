// Package api exposes a read-only debug surface for a running game
// session: a JSON snapshot of the observable state and a websocket
// stream of game events. The game itself never depends on it.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/calafel/hopper/pkg/log"
	"github.com/calafel/hopper/pkg/session"
	"github.com/calafel/hopper/pkg/state"
	"nhooyr.io/websocket"
)

type DebugServer struct {
	server       *http.Server
	stateManager state.StateManager
	fanout       *eventFanout
}

type NewDebugServerOptions struct {
	Port         int
	StateManager state.StateManager
	Session      session.GameRepo
}

// NewDebugServer creates a new http.Server for session diagnostics.
// It must be constructed on the game's logic thread because it
// subscribes to the session's event signals.
func NewDebugServer(opts NewDebugServerOptions) *DebugServer {
	s := &DebugServer{
		stateManager: opts.StateManager,
		fanout:       newEventFanout(opts.Session),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/session", s.handleSession)
	mux.HandleFunc("/events", s.handleEvents)
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: mux,
	}
	return s
}

// Start starts the DebugServer
func (s *DebugServer) Start() {
	log.Info("Debug server listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("Debug server closed")
			return
		}
		log.Error("Debug server error: %v", err)
	}
}

// Stop detaches from the session and shuts the server down.
func (s *DebugServer) Stop(ctx context.Context) error {
	s.fanout.close()
	return s.server.Shutdown(ctx)
}

func (s *DebugServer) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.stateManager.Get()); err != nil {
		log.Error("failed to encode session state: %v", err)
		http.Error(w, "Failed to encode session state", http.StatusInternalServerError)
		return
	}
}

func (s *DebugServer) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Error("Failed to upgrade to WebSocket: %v", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")
	log.Debug("New event stream client from %s", r.RemoteAddr)

	ch := s.fanout.addClient()
	defer s.fanout.removeClient(ch)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case frame := <-ch:
			if err := conn.Write(ctx, websocket.MessageText, frame); err != nil {
				log.Debug("Event stream client went away: %v", err)
				return
			}
		}
	}
}

// Package server exposes a pipeline session over a websocket so an
// external viewer can edit stages, rebuild and receive meshes.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-constructor/internal/logger"
	"github.com/Faultbox/terrain-constructor/internal/pipeline"
)

// Server owns one session shared by all connections. Requests are handled
// one at a time, so a rebuild blocks other clients until it completes.
type Server struct {
	mu      sync.Mutex
	session *pipeline.Session

	upgrader websocket.Upgrader
	log      *zap.Logger
}

// New returns a server editing session.
func New(session *pipeline.Session) *Server {
	return &Server{
		session: session,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // viewers run from file:// or another port
			},
		},
		log: logger.Named("server"),
	}
}

// Handler returns the HTTP handler serving the websocket at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving %s: %w", addr, err)
	}
	return nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	s.log.Debug("client connected", zap.String("remote", r.RemoteAddr))

	// Initial state
	s.mu.Lock()
	hello := stagesMessage(s.session)
	s.mu.Unlock()
	if err := conn.WriteJSON(hello); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		var req Request
		var resp any
		if err := json.Unmarshal(data, &req); err != nil {
			resp = ErrorMessage{Type: "error", Error: fmt.Sprintf("decoding request: %v", err)}
		} else {
			resp = s.Handle(req)
		}

		if err := conn.WriteJSON(resp); err != nil {
			s.log.Warn("websocket write failed", zap.Error(err))
			return
		}
	}
}

// Handle applies one request to the session and returns the reply.
func (s *Server) Handle(req Request) any {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp, err := s.apply(req)
	if err != nil {
		s.log.Debug("request rejected", zap.String("type", req.Type), zap.Error(err))
		return ErrorMessage{Type: "error", Error: err.Error()}
	}
	return resp
}

func (s *Server) apply(req Request) (any, error) {
	sess := s.session

	switch req.Type {
	case TypeBuild:
		var err error
		if req.UpTo == nil || *req.UpTo < 0 {
			err = sess.Build()
		} else {
			err = sess.BuildUpTo(*req.UpTo)
		}
		if err != nil {
			return nil, err
		}
		return meshMessage(sess, req.Wireframe), nil

	case TypeSeed:
		if req.Seed == nil {
			return nil, errors.New("seed request without seed")
		}
		sess.SetSeed(*req.Seed)
	case TypeRetrieve:
		sess.Retrieve()
	case TypeResetSeed:
		sess.ResetSeed()

	case TypeAdd, TypeSet:
		if req.Operation == nil {
			return nil, fmt.Errorf("%s request without operation", req.Type)
		}
		op, err := req.Operation.Operation()
		if err != nil {
			return nil, err
		}
		if req.Type == TypeAdd {
			sess.Add(op)
		} else if err := sess.Set(req.Index, op); err != nil {
			return nil, err
		}

	case TypeRemove:
		if err := sess.Remove(req.Index); err != nil {
			return nil, err
		}
	case TypeMoveUp:
		if err := sess.MoveUp(req.Index); err != nil {
			return nil, err
		}
	case TypeMoveDown:
		if err := sess.MoveDown(req.Index); err != nil {
			return nil, err
		}
	case TypeList:

	default:
		return nil, fmt.Errorf("unknown request type %q", req.Type)
	}

	return stagesMessage(sess), nil
}

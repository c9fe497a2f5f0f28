package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"net"
	"os"
	"sync/atomic"
	"time"

	"github.com/yourusername/stackwm/internal/logging"
)

// ErrServerClosed is returned by Serve after Close.
var ErrServerClosed = errors.New("ipc: server closed")

const (
	errCodeBadRequest    = 400
	errCodeUnknownMethod = 404
	errCodeNotReady      = 503
)

// Server answers queries on a unix domain socket. It is safe to run on
// its own goroutine: requests only ever read the last published
// snapshot.
type Server struct {
	listener net.Listener
	snap     atomic.Value // Snapshot
	version  string
	closed   atomic.Bool
}

// NewServer binds the socket, replacing any stale file left by a
// previous instance.
func NewServer(socketPath, version string) (*Server, error) {
	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	l, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, err
	}
	return &Server{listener: l, version: version}, nil
}

// Publish replaces the snapshot served to dump requests.
func (s *Server) Publish(snap Snapshot) {
	s.snap.Store(snap)
}

// Serve accepts connections until Close.
func (s *Server) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.closed.Load() {
				return ErrServerClosed
			}
			logging.Warn().Err(err).Msg("ipc: accept failed")
			continue
		}
		go s.handleConn(conn)
	}
}

// Close stops the listener and removes the socket file.
func (s *Server) Close() error {
	s.closed.Store(true)
	return s.listener.Close()
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	scanner := bufio.NewScanner(conn)
	enc := json.NewEncoder(conn)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var env MessageEnvelope
		if err := json.Unmarshal(line, &env); err != nil || env.Request == nil {
			_ = enc.Encode(NewErrorResponse("", errCodeBadRequest, "malformed request"))
			continue
		}
		if err := enc.Encode(s.dispatch(env.Request)); err != nil {
			return
		}
	}
}

func (s *Server) dispatch(req *Request) *MessageEnvelope {
	switch req.Method {
	case "ping":
		return NewResponse(req.ID, map[string]any{
			"timestamp": time.Now().Unix(),
		})
	case "getManagerInfo":
		return NewResponse(req.ID, map[string]any{
			"name":    "stackwm",
			"version": s.version,
			"pid":     os.Getpid(),
		})
	case "dump":
		snap, ok := s.snap.Load().(Snapshot)
		if !ok {
			return NewErrorResponse(req.ID, errCodeNotReady, "no state published yet")
		}
		raw, err := json.Marshal(snap)
		if err != nil {
			return NewErrorResponse(req.ID, errCodeBadRequest, err.Error())
		}
		var result map[string]any
		if err := json.Unmarshal(raw, &result); err != nil {
			return NewErrorResponse(req.ID, errCodeBadRequest, err.Error())
		}
		return NewResponse(req.ID, result)
	}
	return NewErrorResponse(req.ID, errCodeUnknownMethod, "unknown method: "+req.Method)
}

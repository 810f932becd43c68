// Package transport is the external-interface layer of spec §6: an
// input-ingestion WebSocket server that queues events onto a session's
// LiveSource, and a management/read HTTP+WebSocket API for inspecting
// running sessions. Nothing here sits on the determinism-critical path;
// it only ever calls the narrow EventSource surface and read accessors
// exposed by session.Session.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"time"

	"golang.org/x/net/websocket"

	"github.com/tickforge/engine/session"
)

// inputFrame is the wire shape of one queued input message.
type inputFrame struct {
	InputType string `json:"inputType"`
	Params    any    `json:"params"`
}

// InputServer accepts one raw WebSocket connection per session and
// queues every JSON frame it reads onto that session's LiveSource,
// mirroring the reference server's raw x/net/websocket read loop.
type InputServer struct {
	host *session.Host
	log  *slog.Logger
}

// NewInputServer builds an InputServer over host. A nil logger defaults
// to slog.Default().
func NewInputServer(host *session.Host, logger *slog.Logger) *InputServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &InputServer{host: host, log: logger}
}

// Handler returns the websocket.Handler to mount at an input-ingestion
// route; id identifies which session this connection feeds.
func (s *InputServer) Handler(id session.ID) websocket.Handler {
	return func(ws *websocket.Conn) {
		defer ws.Close()

		sess, ok := s.host.Lookup(id)
		if !ok {
			s.log.Warn("input connection for unknown session", "session", id)
			return
		}

		s.readLoop(ws, sess)
	}
}

func (s *InputServer) readLoop(ws *websocket.Conn, sess *session.Session) {
	buf := make([]byte, 4096)
	for {
		n, err := ws.Read(buf)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.log.Warn("input read error", "session", sess.ID(), "error", err)
			}
			return
		}

		var frame inputFrame
		if err := json.Unmarshal(buf[:n], &frame); err != nil {
			s.log.Warn("malformed input frame", "session", sess.ID(), "error", err)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err = sess.QueueInput(ctx, frame.InputType, frame.Params)
		cancel()
		if err != nil {
			s.log.Warn("queue input failed", "session", sess.ID(), "error", err)
		}
	}
}

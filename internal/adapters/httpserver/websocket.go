package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.trai.ch/xmlres/internal/adapters/report"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = (pongWait * 9) / 10
	sendBuffer      = 16
	maxMessageBytes = defaultMaxBodyBytes
)

// Message types pushed to WebSocket clients.
const (
	MessageResult = "result"
	MessageError  = "error"
)

// ClientMessage is what a WebSocket client sends: the full text of a document,
// or Close to drop the document.
type ClientMessage struct {
	URI   string `json:"uri"`
	Text  string `json:"text"`
	Close bool   `json:"close,omitempty"`
}

// ServerMessage is what the server pushes. Version counts the texts received
// for URI; a result is only pushed for the latest one.
type ServerMessage struct {
	Type    string          `json:"type"`
	URI     string          `json:"uri,omitempty"`
	Version int             `json:"version,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type wsDocument struct {
	version int
	text    string
}

// session is one WebSocket connection. Every text runs in its own goroutine;
// a result with pending downloads is pushed again once they settle.
type session struct {
	srv  *Server
	conn *websocket.Conn
	send chan ServerMessage

	mu   sync.Mutex
	docs map[string]*wsDocument
	wg   sync.WaitGroup
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed: " + err.Error())
		return
	}
	websocketSessions.Inc()
	defer websocketSessions.Dec()

	ctx, cancel := context.WithCancel(r.Context())
	ss := &session{
		srv:  s,
		conn: conn,
		send: make(chan ServerMessage, sendBuffer),
		docs: make(map[string]*wsDocument),
	}

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ss.writePump(ctx)
	}()

	ss.readLoop(ctx)
	cancel()
	ss.wg.Wait()
	<-writerDone
	for uri := range ss.docs {
		s.svc.Forget(uri)
	}
}

func (ss *session) readLoop(ctx context.Context) {
	ss.conn.SetReadLimit(maxMessageBytes)
	_ = ss.conn.SetReadDeadline(time.Now().Add(pongWait))
	ss.conn.SetPongHandler(func(string) error {
		return ss.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := ss.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				ss.srv.logger.Warn("websocket closed unexpectedly: " + err.Error())
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			ss.push(ctx, ServerMessage{Type: MessageError, Error: "invalid message: " + err.Error()})
			continue
		}
		if msg.URI == "" {
			ss.push(ctx, ServerMessage{Type: MessageError, Error: "uri is required"})
			continue
		}
		if msg.Close {
			ss.close(msg.URI)
			continue
		}

		version := ss.update(msg.URI, msg.Text)
		ss.wg.Add(1)
		go func() {
			defer ss.wg.Done()
			ss.validate(ctx, msg.URI, version)
		}()
	}
}

func (ss *session) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = ss.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			_ = ss.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		case msg := <-ss.send:
			_ = ss.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ss.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = ss.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ss.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (ss *session) push(ctx context.Context, msg ServerMessage) {
	select {
	case ss.send <- msg:
	case <-ctx.Done():
	}
}

func (ss *session) update(uri, text string) int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	doc, ok := ss.docs[uri]
	if !ok {
		doc = &wsDocument{}
		ss.docs[uri] = doc
	}
	doc.version++
	doc.text = text
	return doc.version
}

// current returns the text of uri if version is still the latest one.
func (ss *session) current(uri string, version int) (string, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	doc, ok := ss.docs[uri]
	if !ok || doc.version != version {
		return "", false
	}
	return doc.text, true
}

func (ss *session) close(uri string) {
	ss.mu.Lock()
	delete(ss.docs, uri)
	ss.mu.Unlock()
	ss.srv.svc.Forget(uri)
}

func (ss *session) validate(ctx context.Context, uri string, version int) {
	for {
		text, ok := ss.current(uri, version)
		if !ok {
			return
		}

		res, err := ss.srv.svc.ValidateText(ctx, uri, strings.NewReader(text))
		if err != nil {
			if errors.Is(err, domain.ErrValidationSuperseded) || ctx.Err() != nil {
				return
			}
			ss.srv.logger.Error(zerr.With(err, "uri", uri))
			ss.push(ctx, ServerMessage{Type: MessageError, URI: uri, Version: version, Error: err.Error()})
			return
		}
		if _, ok := ss.current(uri, version); !ok {
			return
		}

		ss.srv.pending.add(res.Pending)
		data, err := report.MarshalResult(res)
		if err != nil {
			ss.push(ctx, ServerMessage{Type: MessageError, URI: uri, Version: version, Error: err.Error()})
			return
		}
		ss.push(ctx, ServerMessage{Type: MessageResult, URI: uri, Version: version, Result: data})

		if !res.HasPending() {
			return
		}
		if err := res.Wait(ctx); err != nil {
			return
		}
	}
}

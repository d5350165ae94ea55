package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/cwrk-planet/conference-service/internal/session"
)

type SessionSvc interface {
	Session(id string) (*session.Session, error)
}

type Server struct {
	upgrader websocket.Upgrader
	hub      *Hub
	svc      SessionSvc

	pingEvery time.Duration
}

func NewServer(hub *Hub, svc SessionSvc) *Server {
	return &Server{
		hub: hub,
		svc: svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery: 15 * time.Second,
	}
}

// WS endpoint: GET /ws/sessions/{id}?access_token=...
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		http.Error(w, "missing session id", http.StatusBadRequest)
		return
	}

	sess, err := s.svc.Session(sessionID)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "err", err)
		return
	}

	c := newWsConn(conn, sessionID)
	s.hub.Add(c)

	// начальный снапшот — страница рисует состояние с него
	if err := c.Send(Message{Type: TypeState, Payload: sess.Snapshot()}); err != nil {
		slog.Warn("ws send initial state failed", "session", sessionID, "err", err)
	}

	go s.writeLoop(c)
	s.readLoop(c, sess)

	s.hub.Remove(c)
	if err := c.Close(); err != nil {
		slog.Debug("ws close failed", "session", sessionID, "err", err)
	}
}

func (s *Server) readLoop(c *wsConn, sess *session.Session) {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(1 << 20)
	c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case TypeChat:
			var p ChatPayload
			if decode(msg.Payload, &p) == nil {
				// пустой текст сессия молча игнорирует
				if _, err := sess.SendMessage(p.Message); err != nil {
					slog.Warn("ws chat failed", "session", c.sessionID, "err", err)
				}
			}
		case TypeReaction:
			var p ReactionPayload
			if decode(msg.Payload, &p) == nil {
				if _, err := sess.SendReaction(p.Kind); err != nil {
					slog.Warn("ws reaction failed", "session", c.sessionID, "err", err)
				}
			}
		case TypeToggle:
			var p TogglePayload
			if decode(msg.Payload, &p) == nil {
				var on bool
				switch p.Target {
				case "video":
					on = sess.ToggleVideo()
				case "audio":
					on = sess.ToggleAudio()
				default:
					continue
				}
				s.hub.Broadcast(c.sessionID, Message{
					Type:    TypeToggle,
					Payload: TogglePayload{SessionID: c.sessionID, Target: p.Target, On: on},
				})
			}
		default:
			// ignore
		}
	}
}

func (s *Server) writeLoop(c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		case <-c.closed:
			return
		}
	}
}

func decode(payload any, dst any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, dst)
}

type wsConn struct {
	conn      *websocket.Conn
	sessionID string
	sendMu    chan struct{}
	closed    chan struct{}
}

func newWsConn(c *websocket.Conn, sessionID string) *wsConn {
	return &wsConn{
		conn:      c,
		sessionID: sessionID,
		sendMu:    make(chan struct{}, 1),
		closed:    make(chan struct{}),
	}
}

func (c *wsConn) Send(msg Message) error {
	c.sendMu <- struct{}{}
	defer func() { <-c.sendMu }()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))

	return c.conn.WriteJSON(msg)
}

func (c *wsConn) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}

	return c.conn.Close()
}

func (c *wsConn) SessionID() string { return c.sessionID }

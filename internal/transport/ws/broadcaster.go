package ws

import (
	"log/slog"

	"github.com/cwrk-planet/conference-service/internal/domain"
)

// Broadcaster транслирует события сессии в WS-сообщения подключённым
// страницам. Реализует session.Sink; уведомления (toast) уходят тем же
// каналом как notice.
type Broadcaster struct {
	hub *Hub
}

func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

func (b *Broadcaster) PeerJoined(sessionID string, p domain.Participant) {
	b.hub.Broadcast(sessionID, Message{
		Type:    TypePeerJoined,
		Payload: PeerJoinedPayload{SessionID: sessionID, Participant: p},
	})
}

func (b *Broadcaster) Chat(sessionID string, m domain.ChatMessage) {
	b.hub.Broadcast(sessionID, Message{
		Type:    TypeChat,
		Payload: ChatEventPayload{SessionID: sessionID, Message: m},
	})
}

func (b *Broadcaster) Reaction(sessionID string, r domain.Reaction) {
	b.hub.Broadcast(sessionID, Message{
		Type:    TypeReaction,
		Payload: ReactionEventPayload{SessionID: sessionID, Reaction: r},
	})
}

func (b *Broadcaster) ReactionGone(sessionID string, reactionID int64) {
	b.hub.Broadcast(sessionID, Message{
		Type:    TypeReactionGone,
		Payload: ReactionGonePayload{SessionID: sessionID, ReactionID: reactionID},
	})
}

func (b *Broadcaster) Notice(sessionID, title, description, severity string) {
	slog.Debug("notice", "session", sessionID, "title", title, "severity", severity)
	b.hub.Broadcast(sessionID, Message{
		Type: TypeNotice,
		Payload: NoticePayload{
			SessionID:   sessionID,
			Title:       title,
			Description: description,
			Severity:    severity,
		},
	})
}

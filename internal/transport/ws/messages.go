package ws

import "github.com/cwrk-planet/conference-service/internal/domain"

// Типы событий в WS
const (
	TypeState        = "state"         // снапшот сессии целиком
	TypePeerJoined   = "peer_joined"   // участник появился в ростере
	TypeChat         = "chat"          // строка ленты (включая системные)
	TypeReaction     = "reaction"      // реакция вошла в активный набор
	TypeReactionGone = "reaction_gone" // реакция снята по TTL
	TypeToggle       = "toggle"        // переключение видео/аудио
	TypeNotice       = "notice"        // toast-уведомление
)

type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type PeerJoinedPayload struct {
	SessionID   string             `json:"session_id"`
	Participant domain.Participant `json:"participant"`
}

// ChatPayload — входящий фрейм от клиента.
type ChatPayload struct {
	Message string `json:"message"`
}

// ChatEventPayload — исходящая строка ленты.
type ChatEventPayload struct {
	SessionID string             `json:"session_id"`
	Message   domain.ChatMessage `json:"message"`
}

// ReactionPayload — входящий фрейм от клиента.
type ReactionPayload struct {
	Kind domain.ReactionKind `json:"kind"`
}

// ReactionEventPayload — реакция, вошедшая в активный набор.
type ReactionEventPayload struct {
	SessionID string          `json:"session_id"`
	Reaction  domain.Reaction `json:"reaction"`
}

type ReactionGonePayload struct {
	SessionID  string `json:"session_id"`
	ReactionID int64  `json:"reaction_id"`
}

type TogglePayload struct {
	SessionID string `json:"session_id"`
	Target    string `json:"target"` // video|audio
	On        bool   `json:"on"`
}

type NoticePayload struct {
	SessionID   string `json:"session_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

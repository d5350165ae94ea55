package http

import (
	"time"

	"github.com/cwrk-planet/conference-service/internal/domain"
	"github.com/cwrk-planet/conference-service/internal/session"
)

type EventItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Organizer string    `json:"organizer"`
	CreatedAt time.Time `json:"created_at"`
}

type JoinResponse struct {
	SessionID string           `json:"session_id"`
	Event     EventItem        `json:"event"`
	ShareURL  string           `json:"share_url"`
	State     session.Snapshot `json:"state"`
}

type SendMessageRequest struct {
	Text string `json:"text"`
}

type SendReactionRequest struct {
	Kind domain.ReactionKind `json:"kind"`
}

type ToggleResponse struct {
	Target string `json:"target"`
	On     bool   `json:"on"`
}

type ShareResponse struct {
	URL string `json:"url"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func mapEvent(ev *domain.Event) EventItem {
	return EventItem{
		ID:        ev.ID,
		Title:     ev.Title,
		Organizer: ev.Organizer,
		CreatedAt: ev.CreatedAt,
	}
}

package domain

import "time"

type ChatMessage struct {
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	IsSystem  bool      `json:"is_system,omitempty"`
}

package domain

import "time"

type Participant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Simulated bool      `json:"simulated,omitempty"`
	JoinedAt  time.Time `json:"joined_at"`
}

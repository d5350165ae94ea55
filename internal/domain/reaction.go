package domain

import "time"

type ReactionKind string

const (
	ReactionThumbsUp ReactionKind = "👍"
	ReactionHeart    ReactionKind = "❤️"
	ReactionLaugh    ReactionKind = "😂"
	ReactionWow      ReactionKind = "😮"
	ReactionClap     ReactionKind = "👏"
	ReactionParty    ReactionKind = "🎉"
)

// Kinds — допустимые реакции, в порядке отображения в пикере.
var Kinds = []ReactionKind{
	ReactionThumbsUp,
	ReactionHeart,
	ReactionLaugh,
	ReactionWow,
	ReactionClap,
	ReactionParty,
}

func (k ReactionKind) Valid() bool {
	for _, v := range Kinds {
		if k == v {
			return true
		}
	}
	return false
}

// Reaction живёт в активном наборе до истечения TTL, потом снимается по ID.
type Reaction struct {
	ID        int64        `json:"id"`
	Kind      ReactionKind `json:"kind"`
	User      string       `json:"user"`
	CreatedAt time.Time    `json:"created_at"`
}

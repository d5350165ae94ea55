package domain

import "errors"

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionClosed   = errors.New("session closed")
	ErrUnauthenticated = errors.New("user not authenticated")
	ErrUnknownReaction = errors.New("unknown reaction kind")
)

package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/cwrk-planet/conference-service/internal/domain"
	"github.com/cwrk-planet/conference-service/internal/session"
)

const anonymousName = "Anonymous"

type ConferenceService struct {
	catalog  EventCatalog
	sessions *session.Manager
	sink     session.Sink

	joinDelay    time.Duration
	reactionTTL  time.Duration
	peerNames    []string
	shareBaseURL string
}

type Config struct {
	JoinDelay    time.Duration
	ReactionTTL  time.Duration
	PeerNames    []string
	ShareBaseURL string
}

func NewConferenceService(catalog EventCatalog, sessions *session.Manager, sink session.Sink, cfg Config) *ConferenceService {
	return &ConferenceService{
		catalog:      catalog,
		sessions:     sessions,
		sink:         sink,
		joinDelay:    cfg.JoinDelay,
		reactionTTL:  cfg.ReactionTTL,
		peerNames:    cfg.PeerNames,
		shareBaseURL: cfg.ShareBaseURL,
	}
}

type JoinResult struct {
	Event    *domain.Event
	Session  *session.Session
	ShareURL string
}

// Join проверяет событие и пользователя, создаёт сессию. Нет события —
// ErrEventNotFound, нет пользователя — ErrUnauthenticated; без ретраев,
// клиент по этим ошибкам уводит со страницы.
func (s *ConferenceService) Join(ctx context.Context, conferenceID string, user domain.User) (*JoinResult, error) {
	if user.ID == "" {
		return nil, domain.ErrUnauthenticated
	}

	ev, err := s.catalog.Get(ctx, conferenceID)
	if err != nil {
		return nil, err
	}

	name := user.DisplayName
	if name == "" {
		name = anonymousName
	}
	self := domain.Participant{
		ID:       user.ID,
		Name:     name,
		JoinedAt: time.Now(),
	}

	sess := s.sessions.Create(conferenceID, self, session.Options{
		JoinDelay:   s.joinDelay,
		ReactionTTL: s.reactionTTL,
		Peers:       s.simulatedPeers(),
		Sink:        s.sink,
	})

	return &JoinResult{
		Event:    ev,
		Session:  sess,
		ShareURL: s.ShareLink(conferenceID),
	}, nil
}

func (s *ConferenceService) simulatedPeers() []domain.Participant {
	peers := make([]domain.Participant, 0, len(s.peerNames))
	for _, name := range s.peerNames {
		peers = append(peers, domain.Participant{
			ID:        "sim-" + uuid.NewString()[:8],
			Name:      name,
			Simulated: true,
		})
	}
	return peers
}

func (s *ConferenceService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	return s.catalog.Get(ctx, id)
}

// ShareLink — URL страницы конференции; запись в буфер обмена остаётся
// на клиенте.
func (s *ConferenceService) ShareLink(conferenceID string) string {
	return fmt.Sprintf("%s/conference/%s", s.shareBaseURL, url.PathEscape(conferenceID))
}

func (s *ConferenceService) Session(id string) (*session.Session, error) {
	return s.sessions.Get(id)
}

func (s *ConferenceService) Leave(id string) error {
	return s.sessions.Close(id)
}

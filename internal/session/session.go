package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cwrk-planet/conference-service/internal/domain"
)

// Sink получает события сессии (таймеры срабатывают асинхронно,
// поэтому push наружу идёт через интерфейс, а не через возвраты).
type Sink interface {
	PeerJoined(sessionID string, p domain.Participant)
	Chat(sessionID string, m domain.ChatMessage)
	Reaction(sessionID string, r domain.Reaction)
	ReactionGone(sessionID string, reactionID int64)
	Notice(sessionID, title, description, severity string)
}

// Session — состояние одной конференц-сессии: ростер, лента чата,
// активные реакции и локальные флаги видео/аудио.
type Session struct {
	id           string
	conferenceID string
	self         domain.Participant

	joinDelay   time.Duration
	reactionTTL time.Duration
	peers       []domain.Participant
	sink        Sink

	mu             sync.Mutex
	roster         []domain.Participant
	transcript     []domain.ChatMessage
	reactions      []domain.Reaction
	videoOn        bool
	audioOn        bool
	joinTimer      *time.Timer
	reactionTimers map[int64]*time.Timer
	lastReactionID int64
	closed         bool
}

type Options struct {
	JoinDelay   time.Duration
	ReactionTTL time.Duration
	Peers       []domain.Participant
	Sink        Sink
}

func newSession(id, conferenceID string, self domain.Participant, opts Options) *Session {
	s := &Session{
		id:             id,
		conferenceID:   conferenceID,
		self:           self,
		joinDelay:      opts.JoinDelay,
		reactionTTL:    opts.ReactionTTL,
		peers:          opts.Peers,
		sink:           opts.Sink,
		roster:         []domain.Participant{self},
		videoOn:        true,
		audioOn:        true,
		reactionTimers: make(map[int64]*time.Timer),
	}
	return s
}

func (s *Session) ID() string           { return s.id }
func (s *Session) ConferenceID() string { return s.conferenceID }

// start взводит одноразовый таймер симулированного подключения пиров.
func (s *Session) start() {
	if len(s.peers) == 0 || s.joinDelay <= 0 {
		return
	}
	s.mu.Lock()
	s.joinTimer = time.AfterFunc(s.joinDelay, s.simulatedJoin)
	s.mu.Unlock()
}

func (s *Session) simulatedJoin() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	joined := make([]domain.Participant, 0, len(s.peers))
	for _, p := range s.peers {
		if s.inRoster(p.ID) {
			continue
		}
		p.JoinedAt = time.Now()
		s.roster = append(s.roster, p)
		joined = append(joined, p)
	}
	s.mu.Unlock()

	if s.sink == nil || len(joined) == 0 {
		return
	}
	for _, p := range joined {
		s.sink.PeerJoined(s.id, p)
	}
	names := make([]string, 0, len(joined))
	for _, p := range joined {
		names = append(names, p.Name)
	}
	s.sink.Notice(s.id, "Participants joined",
		strings.Join(names, " and ")+" joined the conference", "info")
}

// caller держит s.mu
func (s *Session) inRoster(id string) bool {
	for _, p := range s.roster {
		if p.ID == id {
			return true
		}
	}
	return false
}

// SendMessage добавляет сообщение в ленту. Пустой/пробельный текст —
// тихий no-op: (nil, nil).
func (s *Session) SendMessage(text string) (*domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, domain.ErrSessionClosed
	}
	m := domain.ChatMessage{
		Sender:    s.self.Name,
		Content:   text,
		CreatedAt: time.Now(),
	}
	s.transcript = append(s.transcript, m)
	s.mu.Unlock()

	if s.sink != nil {
		s.sink.Chat(s.id, m)
	}
	return &m, nil
}

// SendReaction добавляет реакцию в активный набор, пишет системную строку
// в ленту и взводит таймер снятия по ID через reactionTTL.
func (s *Session) SendReaction(kind domain.ReactionKind) (*domain.Reaction, error) {
	if !kind.Valid() {
		return nil, domain.ErrUnknownReaction
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, domain.ErrSessionClosed
	}
	now := time.Now()
	id := now.UnixMilli()
	// коллизии в пределах миллисекунды — монотонный сдвиг
	if id <= s.lastReactionID {
		id = s.lastReactionID + 1
	}
	s.lastReactionID = id

	r := domain.Reaction{
		ID:        id,
		Kind:      kind,
		User:      s.self.Name,
		CreatedAt: now,
	}
	s.reactions = append(s.reactions, r)

	sys := domain.ChatMessage{
		Sender:    "System",
		Content:   fmt.Sprintf("%s reacted with %s", s.self.Name, kind),
		CreatedAt: now,
		IsSystem:  true,
	}
	s.transcript = append(s.transcript, sys)

	s.reactionTimers[id] = time.AfterFunc(s.reactionTTL, func() {
		s.expireReaction(id)
	})
	s.mu.Unlock()

	if s.sink != nil {
		s.sink.Reaction(s.id, r)
		s.sink.Chat(s.id, sys)
	}
	return &r, nil
}

func (s *Session) expireReaction(id int64) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	delete(s.reactionTimers, id)
	// снимаем строго по ID: соседние реакции не трогаем
	kept := s.reactions[:0]
	removed := false
	for _, r := range s.reactions {
		if r.ID == id {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	s.reactions = kept
	s.mu.Unlock()

	if removed && s.sink != nil {
		s.sink.ReactionGone(s.id, id)
	}
}

func (s *Session) ToggleVideo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videoOn = !s.videoOn
	return s.videoOn
}

func (s *Session) ToggleAudio() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audioOn = !s.audioOn
	return s.audioOn
}

type Snapshot struct {
	SessionID    string               `json:"session_id"`
	ConferenceID string               `json:"conference_id"`
	Roster       []domain.Participant `json:"roster"`
	Transcript   []domain.ChatMessage `json:"transcript"`
	Reactions    []domain.Reaction    `json:"reactions"`
	VideoOn      bool                 `json:"video_on"`
	AudioOn      bool                 `json:"audio_on"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		SessionID:    s.id,
		ConferenceID: s.conferenceID,
		Roster:       make([]domain.Participant, len(s.roster)),
		Transcript:   make([]domain.ChatMessage, len(s.transcript)),
		Reactions:    make([]domain.Reaction, len(s.reactions)),
		VideoOn:      s.videoOn,
		AudioOn:      s.audioOn,
	}
	copy(snap.Roster, s.roster)
	copy(snap.Transcript, s.transcript)
	copy(snap.Reactions, s.reactions)
	return snap
}

// Close останавливает все таймеры сессии. Колбэки, успевшие стартовать,
// увидят closed и выйдут, не трогая состояние.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.joinTimer != nil {
		s.joinTimer.Stop()
	}
	for id, t := range s.reactionTimers {
		t.Stop()
		delete(s.reactionTimers, id)
	}
}

package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cwrk-planet/conference-service/internal/auth"
	"github.com/cwrk-planet/conference-service/internal/domain"
	"github.com/cwrk-planet/conference-service/internal/service"
	"github.com/cwrk-planet/conference-service/internal/session"
	"github.com/cwrk-planet/conference-service/internal/transport/ws"
)

type testEnv struct {
	srv   *httptest.Server
	token string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	catalog := service.NewStaticCatalog(domain.Event{
		ID:        "ev-1",
		Title:     "Team Sync",
		Organizer: "Acme",
		CreatedAt: time.Now(),
	})
	hub := ws.NewHub()
	svc := service.NewConferenceService(catalog, session.NewManager(), ws.NewBroadcaster(hub), service.Config{
		JoinDelay:    time.Hour,
		ReactionTTL:  time.Second,
		PeerNames:    []string{"Sarah Johnson", "Mike Chen"},
		ShareBaseURL: "http://localhost:5173",
	})

	signer := auth.NewTokenSigner("test-secret", "conference-service", time.Hour)
	token, err := signer.Sign("u1", "Alice", time.Now())
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	router := NewRouter(NewHandler(svc), signer, ws.NewServer(hub, svc), []string{"*"})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, token: token}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, withAuth bool) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, e.srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if withAuth {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (e *testEnv) join(t *testing.T) JoinResponse {
	t.Helper()

	resp := e.do(t, http.MethodPost, "/conferences/ev-1/join", nil, true)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("join status = %d, want 201", resp.StatusCode)
	}
	var jr JoinResponse
	if err := json.NewDecoder(resp.Body).Decode(&jr); err != nil {
		t.Fatalf("decode join response: %v", err)
	}
	return jr
}

func TestJoin_RequiresAuth(t *testing.T) {
	e := newTestEnv(t)

	resp := e.do(t, http.MethodPost, "/conferences/ev-1/join", nil, false)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestJoin_UnknownEvent(t *testing.T) {
	e := newTestEnv(t)

	resp := e.do(t, http.MethodPost, "/conferences/missing/join", nil, true)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestJoin_OK(t *testing.T) {
	e := newTestEnv(t)

	jr := e.join(t)
	if jr.SessionID == "" {
		t.Fatal("empty session id")
	}
	if jr.Event.Title != "Team Sync" || jr.Event.Organizer != "Acme" {
		t.Fatalf("event = %+v", jr.Event)
	}
	if jr.ShareURL != "http://localhost:5173/conference/ev-1" {
		t.Fatalf("share url = %q", jr.ShareURL)
	}
	if len(jr.State.Roster) != 1 || jr.State.Roster[0].Name != "Alice" {
		t.Fatalf("roster = %+v", jr.State.Roster)
	}
	if !jr.State.VideoOn || !jr.State.AudioOn {
		t.Fatalf("expected video and audio on by default: %+v", jr.State)
	}
}

func TestSendMessage(t *testing.T) {
	e := newTestEnv(t)
	jr := e.join(t)

	resp := e.do(t, http.MethodPost, "/sessions/"+jr.SessionID+"/messages",
		SendMessageRequest{Text: "hello"}, true)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var m domain.ChatMessage
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("decode message: %v", err)
	}
	if m.Sender != "Alice" || m.Content != "hello" || m.IsSystem {
		t.Fatalf("message = %+v", m)
	}

	// пустой текст — 204, лента не растёт
	resp = e.do(t, http.MethodPost, "/sessions/"+jr.SessionID+"/messages",
		SendMessageRequest{Text: "   "}, true)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("empty text status = %d, want 204", resp.StatusCode)
	}

	resp = e.do(t, http.MethodGet, "/sessions/"+jr.SessionID, nil, true)
	var snap session.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if len(snap.Transcript) != 1 {
		t.Fatalf("transcript length = %d, want 1", len(snap.Transcript))
	}
}

func TestSendReaction(t *testing.T) {
	e := newTestEnv(t)
	jr := e.join(t)

	resp := e.do(t, http.MethodPost, "/sessions/"+jr.SessionID+"/reactions",
		SendReactionRequest{Kind: domain.ReactionHeart}, true)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var r domain.Reaction
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		t.Fatalf("decode reaction: %v", err)
	}
	if r.Kind != domain.ReactionHeart || r.User != "Alice" || r.ID == 0 {
		t.Fatalf("reaction = %+v", r)
	}

	resp = e.do(t, http.MethodPost, "/sessions/"+jr.SessionID+"/reactions",
		SendReactionRequest{Kind: "🍕"}, true)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown kind status = %d, want 400", resp.StatusCode)
	}
}

func TestToggles(t *testing.T) {
	e := newTestEnv(t)
	jr := e.join(t)

	resp := e.do(t, http.MethodPost, "/sessions/"+jr.SessionID+"/video", nil, true)
	var tr ToggleResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		t.Fatalf("decode toggle: %v", err)
	}
	if tr.Target != "video" || tr.On {
		t.Fatalf("toggle = %+v, want video off", tr)
	}

	resp = e.do(t, http.MethodPost, "/sessions/"+jr.SessionID+"/video", nil, true)
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		t.Fatalf("decode toggle: %v", err)
	}
	if !tr.On {
		t.Fatal("second toggle should restore video on")
	}
}

func TestLeave(t *testing.T) {
	e := newTestEnv(t)
	jr := e.join(t)

	resp := e.do(t, http.MethodDelete, "/sessions/"+jr.SessionID, nil, true)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("leave status = %d, want 200", resp.StatusCode)
	}

	resp = e.do(t, http.MethodGet, "/sessions/"+jr.SessionID, nil, true)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("snapshot after leave status = %d, want 404", resp.StatusCode)
	}
}

func TestShareAndEventLookup(t *testing.T) {
	e := newTestEnv(t)

	resp := e.do(t, http.MethodGet, "/conferences/ev-1", nil, true)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("event status = %d, want 200", resp.StatusCode)
	}

	resp = e.do(t, http.MethodGet, "/conferences/ev-1/share", nil, true)
	var sr ShareResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("decode share: %v", err)
	}
	if sr.URL != "http://localhost:5173/conference/ev-1" {
		t.Fatalf("share url = %q", sr.URL)
	}
}

func TestHealthz(t *testing.T) {
	e := newTestEnv(t)

	resp := e.do(t, http.MethodGet, "/healthz", nil, false)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status = %d, want 200", resp.StatusCode)
	}
	var body map[string]map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode healthz: %v", err)
	}
	if body["data"]["status"] != "ok" {
		t.Fatalf("healthz body = %v", body)
	}
}

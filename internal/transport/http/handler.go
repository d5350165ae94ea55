package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cwrk-planet/conference-service/internal/domain"
	"github.com/cwrk-planet/conference-service/internal/service"
	httpmw "github.com/cwrk-planet/conference-service/internal/transport/http/middleware"
	"github.com/cwrk-planet/conference-service/pkg/errs"
)

type Handler struct {
	svc *service.ConferenceService
}

func NewHandler(svc *service.ConferenceService) *Handler {
	return &Handler{svc: svc}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error) {
	writeJSON(w, errs.ToHTTP(err), ErrorResponse{Error: err.Error()})
}

// POST /conferences/{id}/join
// Нет события или пользователя — терминально (404/401), клиент редиректит.
func (h *Handler) JoinConference(w http.ResponseWriter, r *http.Request) {
	conferenceID := chi.URLParam(r, "id")
	user := httpmw.UserFromCtx(r.Context())

	res, err := h.svc.Join(r.Context(), conferenceID, user)
	if err != nil {
		if !errors.Is(err, domain.ErrEventNotFound) && !errors.Is(err, domain.ErrUnauthenticated) {
			slog.Error("handler.JoinConference:", slog.Any("err", err))
		}
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, JoinResponse{
		SessionID: res.Session.ID(),
		Event:     mapEvent(res.Event),
		ShareURL:  res.ShareURL,
		State:     res.Session.Snapshot(),
	})
}

// GET /conferences/{id}
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := h.svc.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if !errors.Is(err, domain.ErrEventNotFound) {
			slog.Error("handler.GetEvent:", slog.Any("err", err))
		}
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mapEvent(ev))
}

// GET /conferences/{id}/share — URL для буфера обмена на клиенте.
func (h *Handler) ShareLink(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ShareResponse{
		URL: h.svc.ShareLink(chi.URLParam(r, "id")),
	})
}

// GET /sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.Session(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// POST /sessions/{id}/messages
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.Session(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}

	msg, err := sess.SendMessage(req.Text)
	if err != nil {
		writeErr(w, err)
		return
	}
	if msg == nil {
		// пустой текст: no-op без ошибки
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

// POST /sessions/{id}/reactions
func (h *Handler) SendReaction(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.Session(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}

	var req SendReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}

	reaction, err := sess.SendReaction(req.Kind)
	if err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, reaction)
}

// POST /sessions/{id}/video
func (h *Handler) ToggleVideo(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "video")
}

// POST /sessions/{id}/audio
func (h *Handler) ToggleAudio(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "audio")
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, target string) {
	sess, err := h.svc.Session(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}

	var on bool
	if target == "video" {
		on = sess.ToggleVideo()
	} else {
		on = sess.ToggleAudio()
	}

	writeJSON(w, http.StatusOK, ToggleResponse{Target: target, On: on})
}

// DELETE /sessions/{id} — teardown, все таймеры сессии гасятся.
func (h *Handler) Leave(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Leave(chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "left"})
}

package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cwrk-planet/conference-service/internal/auth"
	httpmw "github.com/cwrk-planet/conference-service/internal/transport/http/middleware"
	"github.com/cwrk-planet/conference-service/internal/transport/ws"
	"github.com/cwrk-planet/conference-service/pkg/httputil"
)

func NewRouter(h *Handler, signer *auth.TokenSigner, wsServer *ws.Server, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewareChi.RealIP)
	r.Use(middlewareChi.Recoverer)
	r.Use(middlewareChi.Compress(5))
	r.Use(httputil.MiddlewareRequestID)
	r.Use(httputil.MiddlewareLogging)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Group(func(pr chi.Router) {
		pr.Use(httpmw.AuthMiddleware(signer))

		// WS: токен приходит query-параметром; без Timeout — соединение живёт долго
		pr.Get("/ws/sessions/{id}", wsServer.HandleWS)

		pr.Group(func(ar chi.Router) {
			ar.Use(middlewareChi.Timeout(30 * time.Second))

			ar.Route("/conferences/{id}", func(cr chi.Router) {
				cr.Get("/", h.GetEvent)
				cr.Post("/join", h.JoinConference)
				cr.Get("/share", h.ShareLink)
			})

			ar.Route("/sessions/{id}", func(sr chi.Router) {
				sr.Get("/", h.GetSession)
				sr.Delete("/", h.Leave)
				sr.Post("/messages", h.SendMessage)
				sr.Post("/reactions", h.SendReaction)
				sr.Post("/video", h.ToggleVideo)
				sr.Post("/audio", h.ToggleAudio)
			})
		})
	})

	// health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httputil.OK(w, map[string]string{"status": "ok"})
	})

	return r
}

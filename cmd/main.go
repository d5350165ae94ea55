package main

import (
	"context"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cwrk-planet/conference-service/config"
	"github.com/cwrk-planet/conference-service/internal/auth"
	"github.com/cwrk-planet/conference-service/internal/domain"
	"github.com/cwrk-planet/conference-service/internal/postgres"
	"github.com/cwrk-planet/conference-service/internal/service"
	"github.com/cwrk-planet/conference-service/internal/session"
	grpcx "github.com/cwrk-planet/conference-service/internal/transport/grpc"
	httpx "github.com/cwrk-planet/conference-service/internal/transport/http"
	"github.com/cwrk-planet/conference-service/internal/transport/ws"
	"github.com/cwrk-planet/conference-service/pkg/logger"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.Config{
		Env:       logger.Env(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	slog.Info("starting conference-service",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	// --- event catalog: postgres либо dev-каталог из конфига ---
	ctx := context.Background()
	var catalog service.EventCatalog
	if cfg.Postgres.DSN != "" {
		db, err := postgres.New(ctx, cfg.Postgres.DSN)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer db.Close()
		catalog = postgres.NewEventRepository(db.Pool)
	} else {
		events := make([]domain.Event, 0, len(cfg.Conference.Events))
		for _, ev := range cfg.Conference.Events {
			events = append(events, domain.Event{
				ID:        ev.ID,
				Title:     ev.Title,
				Organizer: ev.Organizer,
				CreatedAt: time.Now(),
			})
		}
		catalog = service.NewStaticCatalog(events...)
		slog.Info("postgres.dsn is empty, using static event catalog", "events", len(events))
	}

	// --- auth ---
	signer := auth.NewTokenSigner(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.TokenTTL())

	// --- WS Hub & session core ---
	hub := ws.NewHub()
	sessions := session.NewManager()
	svc := service.NewConferenceService(catalog, sessions, ws.NewBroadcaster(hub), service.Config{
		JoinDelay:    cfg.JoinDelay(),
		ReactionTTL:  cfg.ReactionTTL(),
		PeerNames:    cfg.Conference.SimulatedPeers,
		ShareBaseURL: cfg.Conference.ShareBaseURL,
	})
	wsServer := ws.NewServer(hub, svc)

	// --- HTTP ---
	handler := httpx.NewHandler(svc)
	router := httpx.NewRouter(handler, signer, wsServer, cfg.HTTP.AllowedOrigins)
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- gRPC (health для проб) ---
	grpcServer, _ := grpcx.NewServer()

	// --- run both servers ---
	errCh := make(chan error, 2)

	go func() {
		slog.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	go func() {
		lis, err := net.Listen("tcp", cfg.GRPC.Addr)
		if err != nil {
			errCh <- err
			return
		}
		slog.Info("grpc listen", "addr", cfg.GRPC.Addr)
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal", "sig", sig)
	case err := <-errCh:
		slog.Error("server error", "err", err)
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	grpcServer.GracefulStop()
	_ = httpSrv.Shutdown(ctxShutdown)
	sessions.CloseAll()
	slog.Info("stopped")
}

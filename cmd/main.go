// @title Booking Backend API
// @version 1.0
// @description Booking marketplace API: profiles, service requests between clients and providers, notifications
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "BOOKING_BACK-END/docs" // This is required for swagger
	"BOOKING_BACK-END/internal/config"
	"BOOKING_BACK-END/internal/handlers"
	"BOOKING_BACK-END/internal/logger"
	"BOOKING_BACK-END/internal/metrics"
	"BOOKING_BACK-END/internal/objectstore"
	"BOOKING_BACK-END/internal/objectstore/local"
	"BOOKING_BACK-END/internal/objectstore/supabase"
	"BOOKING_BACK-END/internal/routes"
	"BOOKING_BACK-END/internal/services/avatars"
	"BOOKING_BACK-END/internal/services/dashboard"
	"BOOKING_BACK-END/internal/services/identity"
	"BOOKING_BACK-END/internal/services/notifications"
	"BOOKING_BACK-END/internal/services/profiles"
	"BOOKING_BACK-END/internal/services/requests"
	"BOOKING_BACK-END/internal/store"
	"BOOKING_BACK-END/internal/store/memory"
	"BOOKING_BACK-END/internal/store/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	for _, w := range cfg.Warnings() {
		log.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.DefaultRegisterer)

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	objects, localObjects := openObjectStore(cfg, log)

	notifier := notifications.New(log, st)
	profileSvc := profiles.New(log, st, m)
	avatarSvc := avatars.New(log, objects, m, avatars.Options{
		SignedURLTTL:    cfg.Avatar.SignedURLTTL,
		MaxBytes:        cfg.Avatar.MaxBytes,
		PlaceholderBase: cfg.Avatar.PlaceholderBase,
	})
	requestSvc := requests.New(log, st, st, notifier, m)
	identitySvc := identity.New(log, st, profileSvc, identity.NewGoogle(cfg.GoogleOAuth))
	board := dashboard.New(log, profileSvc, avatarSvc, requestSvc)

	h := routes.Handlers{
		Auth:          handlers.NewAuthHandler(log, identitySvc, &cfg.JWT),
		Google:        handlers.NewGoogleAuthHandler(log, identitySvc, cfg),
		Health:        handlers.NewHealthHandler(st),
		Profile:       handlers.NewProfileHandler(log, profileSvc, avatarSvc, cfg.Avatar.MaxBytes),
		Requests:      handlers.NewRequestsHandler(log, requestSvc, profileSvc),
		Notifications: handlers.NewNotificationsHandler(log, notifier),
		Dashboard:     handlers.NewDashboardHandler(log, board),
	}
	if localObjects != nil {
		h.AvatarObjects = handlers.NewAvatarObjectsHandler(log, localObjects)
	}

	router := routes.SetupRoutes(log, m, prometheus.DefaultGatherer, &cfg.JWT, h)

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP server listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.String("store", cfg.Database.Driver),
			zap.String("storage", cfg.Storage.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	err = g.Wait()
	log.Info("server stopped")
	return err
}

func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (store.Store, error) {
	if cfg.Database.Driver != config.StoreDriverPostgres {
		log.Warn("using in-memory store; data is lost on restart")
		return memory.New(), nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Info("connected to postgres",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Name),
	)
	return postgres.New(pool), nil
}

// openObjectStore also returns the local store when it is in use, since
// its signed reads are served by this process.
func openObjectStore(cfg *config.Config, log *zap.Logger) (objectstore.Store, *local.Store) {
	if cfg.Storage.Driver == config.StorageDriverSupabase {
		return supabase.New(cfg.Storage.SupabaseURL, cfg.Storage.SupabaseServiceKey, cfg.Storage.Bucket), nil
	}

	log.Info("storing avatars on local disk", zap.String("root", cfg.Storage.LocalRoot))
	ls := local.New(cfg.Storage.LocalRoot, cfg.Server.PublicBaseURL, cfg.JWT.Secret)
	return ls, ls
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dfryer1193/postboard/blog/application"
	"github.com/dfryer1193/postboard/blog/domain"
	"github.com/dfryer1193/postboard/blog/persistence"
	"github.com/dfryer1193/postboard/internal/config"
	"github.com/dfryer1193/postboard/internal/logging"
	"github.com/dfryer1193/postboard/internal/middleware"
	"github.com/dfryer1193/postboard/internal/rest"
	"github.com/dfryer1193/postboard/shared/db/sqlite"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	repo, closeRepo, err := newRepository(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("Failed to initialize post store")
	}
	defer func() {
		if err := closeRepo(); err != nil {
			log.Error().Err(err).Msg("Failed to close post store")
		}
	}()

	postService := application.NewPostService(repo)

	r := gin.New()
	r.Use(middleware.LoggingMiddleware())
	r.Use(gin.CustomRecovery(middleware.HandlePanics()))
	r.Use(middleware.CORS())
	rest.NewApi(r, postService)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("driver", cfg.StoreDriver).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to shutdown server")
		return
	}

	log.Info().Msg("Server stopped")
}

// newRepository builds the post store selected by cfg, seeded with the
// initial posts. The returned func releases whatever the store holds.
func newRepository(cfg config.Config) (domain.PostRepository, func() error, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverSQLite:
		database := sqlite.NewSQLiteDB(sqlite.NewSQLiteConfig())
		if err := database.Connect(); err != nil {
			return nil, nil, err
		}

		repo := persistence.NewPostRepository(database.DB())
		if err := repo.Seed(context.Background(), domain.SeedPosts()); err != nil {
			database.Close()
			return nil, nil, err
		}
		return repo, database.Close, nil
	default:
		return persistence.NewMemoryPostRepository(domain.SeedPosts()), func() error { return nil }, nil
	}
}

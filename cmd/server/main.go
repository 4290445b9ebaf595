package main

import (
	"context"
	"encoding/gob"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
	"github.com/joho/godotenv"

	"github.com/user/aifilm/internal/ai"
	"github.com/user/aifilm/internal/config"
	"github.com/user/aifilm/internal/handler"
	"github.com/user/aifilm/internal/model"
	"github.com/user/aifilm/internal/repository"
	"github.com/user/aifilm/internal/router"
	"github.com/user/aifilm/internal/service"
	"github.com/user/aifilm/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file, using environment")
	}

	cfg := config.Load()

	db, err := repository.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connection failed", "err", err)
	}

	utils.InitCache()
	gob.Register(model.SessionUser{})

	repos := repository.NewRepositories(db)

	openaiClient := ai.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	var generator ai.TextGenerator = openaiClient
	if cfg.AIProvider == "gemini" {
		generator = ai.NewGeminiClient(cfg.GeminiKey, cfg.GeminiModel)
	}

	similarity := service.NewSimilarityService(repos.Movie, repos.TVShow)
	tips := service.NewTipService(repos.Movie, repos.TVShow, repos.Review, generator)
	chatbot := service.NewChatbotService(repos.Movie, repos.TVShow, openaiClient)
	tmdb := service.NewTMDBService(cfg, repos)

	handler.RegisterValidators()
	h := handler.NewHandler(cfg, repos, similarity, tips, chatbot, tmdb)
	engine := router.Setup(cfg, h)

	scheduler := startScheduler(cfg, tmdb)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		// AI calls can take up to 30s, leave headroom.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if scheduler != nil {
		if err := scheduler.Shutdown(); err != nil {
			log.Warn("scheduler shutdown failed", "err", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "err", err)
	}
	log.Info("server stopped")
}

// startScheduler wires the nightly TMDB sync. Without an API key the
// scheduler is skipped entirely.
func startScheduler(cfg *config.Config, tmdb *service.TMDBService) gocron.Scheduler {
	if cfg.TMDBAPIKey == "" {
		log.Warn("TMDB_API_KEY not set, catalog sync disabled")
		return nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Error("scheduler init failed", "err", err)
		return nil
	}

	_, err = scheduler.NewJob(
		gocron.CronJob(cfg.TMDBSyncSchedule, false),
		gocron.NewTask(func() {
			ctx := context.Background()
			if _, err := tmdb.SyncMovies(ctx); err != nil {
				log.Error("scheduled movie sync failed", "err", err)
			}
			if _, err := tmdb.SyncTVShows(ctx); err != nil {
				log.Error("scheduled tvshow sync failed", "err", err)
			}
		}),
	)
	if err != nil {
		log.Error("sync job registration failed", "err", err)
		return nil
	}

	scheduler.Start()
	log.Info("catalog sync scheduled", "cron", cfg.TMDBSyncSchedule)
	return scheduler
}

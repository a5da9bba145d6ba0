package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bible-quiz-service/internal/app"
	"bible-quiz-service/internal/config"
	"bible-quiz-service/internal/domain"
	"bible-quiz-service/internal/infra/memory"
	pgstore "bible-quiz-service/internal/infra/postgres"
	redisstore "bible-quiz-service/internal/infra/redis"
	transport "bible-quiz-service/internal/transport/http"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	log := logrus.StandardLogger()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	// Postgres holds the durable catalog when configured; otherwise the
	// built-in sample catalog backs a demo deployment.
	var loader memory.CatalogLoader = memory.NewStaticCatalogLoader(seededSampleCatalog())
	if pool != nil {
		loader = pgstore.NewCatalogStore(pool)
	}

	catalogTTL := config.TTLDuration(cfg.Quiz.CatalogTTL, 10*time.Minute)
	var questions app.QuestionRepository
	if redisClient != nil {
		questions = redisstore.NewQuestionCatalog(redisClient, loader, catalogTTL)
	} else {
		questions = memory.NewQuestionCatalog(loader, catalogTTL)
	}

	var sessions app.SessionRepository
	var statsRepo app.StatsRepository
	if redisClient != nil {
		sessionTTL := config.TTLDuration(cfg.Redis.SessionTTL, 0)
		sessions = redisstore.NewSessionStore(redisClient, sessionTTL)
		statsRepo = redisstore.NewStatsStore(redisClient)
	} else {
		sessions = memory.NewSessionStore()
		statsRepo = memory.NewStatsStore()
	}

	hub := app.NewLeaderboardHub()
	stats := app.NewStatsAggregator(statsRepo, hub)
	service := app.NewQuizService(questions, sessions, stats, cfg.Quiz.SampleSize)
	handler := transport.NewHandler(service)
	wsHandler := transport.NewWSHandler(service, hub)

	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Mount("/api/v1", handler.Routes())
	r.Get("/ws/leaderboard", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.WithField("port", finalPort).Info("starting quiz service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("failed to start server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server...")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// seededSampleCatalog assigns IDs to the built-in catalog for the
// no-Postgres demo mode.
func seededSampleCatalog() []domain.Question {
	questions := app.SampleCatalog()
	for i := range questions {
		questions[i].ID = uuid.NewString()
	}
	return questions
}

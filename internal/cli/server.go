package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"quiz-ladder/internal/app"
	"quiz-ladder/internal/config"
	"quiz-ladder/internal/domain"
	"quiz-ladder/internal/infra/memory"
	pgstore "quiz-ladder/internal/infra/postgres"
	redisstore "quiz-ladder/internal/infra/redis"
	transport "quiz-ladder/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
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

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 24*time.Hour)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var loader memory.LevelLoader = memory.NewStaticQuestionLoader(sampleQuestions())
	if pool != nil {
		loader = pgstore.NewQuestionLoader(pool)
	}

	catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)
	var catalog app.QuestionCatalog
	if redisClient != nil {
		catalog = redisstore.NewQuestionCatalog(redisClient, loader, catalogTTL)
	} else {
		catalog = memory.NewQuestionCatalog(loader, catalogTTL)
	}

	var games app.GameRepository
	if redisClient != nil {
		games = redisstore.NewGameStore(redisClient, redisTTL)
	} else {
		games = memory.NewGameStore()
	}

	var players app.PlayerRepository
	switch {
	case pool != nil:
		players = pgstore.NewPlayerStore(pool)
	case redisClient != nil:
		players = redisstore.NewPlayerStore(redisClient)
	default:
		players = memory.NewPlayerStore()
	}

	service := app.NewGameService(engine, catalog, games, players)
	wsHandler := transport.NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz ladder on :%s (%d levels, time limit %s)", finalPort, len(engine.Ladder().Levels()), engine.TimeLimit())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newEngine(cfg config.Config) (*app.Engine, error) {
	ladder := domain.DefaultLadder()
	if len(cfg.Game.Prizes) > 0 {
		custom, err := domain.NewPrizeLadder(cfg.Game.Prizes)
		if err != nil {
			return nil, err
		}
		ladder = custom
	}

	rnd := app.NewRand()
	if cfg.Game.Seed != 0 {
		rnd = app.NewSeededRand(cfg.Game.Seed)
	}
	timeLimit := config.TTLDuration(cfg.Game.TimeLimit, app.DefaultTimeLimit)
	help := app.NewHelpGenerator(rnd, cfg.FriendAccuracy(app.DefaultFriendAccuracy))
	return app.NewEngine(ladder, timeLimit, app.NewShuffler(rnd), help), nil
}

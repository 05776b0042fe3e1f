package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/live-cricket-scoring/internal/config"
	"github.com/iliyamo/live-cricket-scoring/internal/database"
	"github.com/iliyamo/live-cricket-scoring/internal/engine"
	"github.com/iliyamo/live-cricket-scoring/internal/handler"
	"github.com/iliyamo/live-cricket-scoring/internal/model"
	"github.com/iliyamo/live-cricket-scoring/internal/queue"
	"github.com/iliyamo/live-cricket-scoring/internal/repository"
	"github.com/iliyamo/live-cricket-scoring/internal/router"
	queue_publisher "github.com/iliyamo/live-cricket-scoring/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	defer db.Close()

	// Redis is optional infrastructure: a nil client disables the
	// scorecard cache and rate limiter but scoring keeps working.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	innings := repository.NewInningsRepo(db)
	matches := repository.NewMatchRepo(db)
	eng := engine.New(innings, matches)

	scorer := &handler.ScorerHandler{
		Engine:  eng,
		Matches: matches,
		Publish: func(ctx context.Context, in *model.Innings) {
			ev := queue.InningsCompletedEvent{
				MatchID:       in.MatchID,
				InningsNumber: in.InningsNumber,
				BattingTeam:   in.BattingTeam,
				BowlingTeam:   in.BowlingTeam,
				Runs:          in.Runs,
				Wickets:       in.Wickets,
				Overs:         in.Overs,
				Status:        string(in.Status),
				Result:        string(in.Result),
				Description:   in.ResultDescription,
			}
			if in.EndTime != nil {
				ev.CompletedAt = in.EndTime.Format("2006-01-02 15:04:05")
			}
			// Publish failures are logged inside the publisher and
			// swallowed here: the innings is already committed.
			_ = queue_publisher.PublishInningsCompleted(ctx, ev)
		},
	}
	public := &handler.PublicHandler{Engine: eng, Matches: matches}
	auth := &handler.AuthHandler{
		Secret:        cfg.JWTSecret,
		TTLMin:        cfg.AccessTTLMin,
		ScorerKeyHash: cfg.ScorerAPIKeyHash,
		AdminKeyHash:  cfg.AdminAPIKeyHash,
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth)
	router.RegisterPublic(e, public, rdb)
	router.RegisterScorer(e, scorer, cfg.JWTSecret)

	// The consumer runs its own reconnect loop for the lifetime of the
	// process and appends completed innings to logs/scoring.log.
	go func() {
		if err := queue.StartInningsConsumer(); err != nil {
			log.Printf("innings consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/live-cricket-scoring/internal/config"
	"github.com/iliyamo/live-cricket-scoring/internal/handler"
	"github.com/iliyamo/live-cricket-scoring/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication and no
// shared infrastructure.  Currently that is only the health check used by
// load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the token-exchange endpoint.  Scoring clients
// trade their provisioned API key for a short-lived JWT here before
// touching any scoring route.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	e.POST("/v1/auth/token", a.Token)
}

// RegisterPublic registers the unauthenticated scorecard routes.  These
// are the polling hot path during a live match, so they sit behind the
// Redis response cache and the token-bucket rate limiter.  Either
// middleware degrades to a no-op when Redis is down.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, rdb *redis.Client) {
	g := e.Group("/v1")
	g.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	g.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	g.GET("/matches", p.ListMatches)
	g.GET("/matches/:matchId/innings", p.ListInnings)
	g.GET("/matches/:matchId/innings/:inningsNumber", p.GetInnings)
	g.GET("/matches/:matchId/innings/:inningsNumber/stats", p.GetStats)
}

// RegisterScorer registers the authenticated scoring routes.  Everything
// under the group needs a valid JWT; the ball-by-ball and lifecycle
// routes accept both roles, while force-end, delete and fixture
// administration are ADMIN only.
func RegisterScorer(e *echo.Echo, s *handler.ScorerHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))

	scorer := g.Group("", middleware.RequireRole("SCORER", "ADMIN"))
	scorer.GET("/matches/:matchId", s.GetMatch)
	scorer.POST("/matches/:matchId/innings", s.CreateInnings)
	scorer.POST("/matches/:matchId/innings/:inningsNumber/start", s.StartInnings)
	scorer.POST("/matches/:matchId/innings/:inningsNumber/pause", s.PauseInnings)
	scorer.POST("/matches/:matchId/innings/:inningsNumber/resume", s.ResumeInnings)
	scorer.POST("/matches/:matchId/innings/:inningsNumber/end", s.EndInnings)
	scorer.POST("/matches/:matchId/innings/:inningsNumber/declare", s.DeclareInnings)
	scorer.PATCH("/matches/:matchId/innings/:inningsNumber", s.UpdateInnings)
	scorer.POST("/matches/:matchId/innings/:inningsNumber/balls", s.RecordBall)
	scorer.PUT("/matches/:matchId/innings/:inningsNumber/players", s.UpdatePlayers)
	scorer.POST("/matches/:matchId/innings/:inningsNumber/players/swap-strike", s.SwapStrike)
	scorer.POST("/matches/:matchId/innings/:inningsNumber/power-plays", s.SetPowerPlay)

	admin := g.Group("", middleware.RequireRole("ADMIN"))
	admin.POST("/matches", s.CreateMatch)
	admin.PATCH("/matches/:matchId/status", s.SetMatchStatus)
	admin.POST("/matches/:matchId/innings/:inningsNumber/force-end", s.ForceEndInnings)
	admin.DELETE("/matches/:matchId/innings/:inningsNumber", s.DeleteInnings)
}

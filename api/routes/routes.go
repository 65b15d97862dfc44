package routes

import (
	"context"
	"errors"
	"net/http"
	"tierboard/api/handlers"
	"tierboard/pkg/metrics"
	"tierboard/pkg/storage"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type Router struct {
	Engine *gin.Engine
	api    *gin.RouterGroup
}

func NewRouter(engine *gin.Engine) *Router {
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	return &Router{
		api:    engine.Group("/api/v1"),
		Engine: engine,
	}
}

func (r *Router) SetupRoutes(handlerList ...any) {
	for _, h := range handlerList {
		switch handler := h.(type) {
		case *handlers.LeaderboardHandler:
			r.registerLeaderboardHandler(handler)
		case *handlers.MemberHandler:
			r.registerMemberHandler(handler)
		}
	}
}

// Register the leaderboard handler.
func (r *Router) registerLeaderboardHandler(handler *handlers.LeaderboardHandler) {
	leaderboards := r.api.Group("/leaderboards")
	{
		leaderboards.GET("", handler.ListLeaderboards)
		leaderboards.GET("/:id", handler.GetLeaderboard)
		leaderboards.POST("", handler.CreateLeaderboard)
		leaderboards.PUT("/:id", handler.UpdateLeaderboard)
		leaderboards.DELETE("/:id", handler.DeleteLeaderboard)
	}
}

// Register the member handler.
func (r *Router) registerMemberHandler(handler *handlers.MemberHandler) {
	members := r.api.Group("/members")
	{
		members.GET("", handler.ListMembers)
		members.POST("", handler.AddMember)
		members.PUT("/batch/reorder", handler.BatchReorder)
		members.PUT("/:id", handler.UpdateMember)
		members.DELETE("/:id", handler.DeleteMember)
	}
}

// ServeUploads exposes the avatars written by the disk store.
func (r *Router) ServeUploads(dir string) {
	r.Engine.Static(storage.UploadsPrefix, dir)
}

// Serve starts the server and shuts it down gracefully once ctx is done.
func (r *Router) Serve(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           r.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("http server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	zap.L().Info("shutting down http server")
	return server.Shutdown(shutdownCtx)
}

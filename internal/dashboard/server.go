// Package dashboard serves the pipeline's JSON API: stage counts, video
// lists, activity feed, pipeline actions, scheduler pass-through, and a
// server-sent event stream of in-flight work.
package dashboard

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/contentflowhq/contentflow/internal/pipeline"
	"github.com/contentflowhq/contentflow/internal/scheduler"
)

// ScheduleAPI is the slice of the scheduler client the dashboard uses.
type ScheduleAPI interface {
	GetSchedule(ctx context.Context, id string) (*scheduler.Schedule, error)
	GetScheduleLogs(ctx context.Context, id string, limit int) ([]scheduler.Execution, error)
	Pause(ctx context.Context, id string) (*scheduler.Schedule, error)
	Resume(ctx context.Context, id string) (*scheduler.Schedule, error)
	TriggerNow(ctx context.Context, id string) (*scheduler.Schedule, error)
}

// StartOpts holds configuration for the dashboard server.
type StartOpts struct {
	DB         *gorm.DB
	Driver     *pipeline.Driver
	Scheduler  ScheduleAPI // optional; schedule routes return 503 when nil
	ScheduleID string
	Port       int
	Out        io.Writer
}

type server struct {
	db         *gorm.DB
	driver     *pipeline.Driver
	scheduler  ScheduleAPI
	scheduleID string
}

// Start launches the dashboard HTTP server. It blocks until ctx is cancelled,
// then shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.DB == nil {
		return fmt.Errorf("dashboard: db is required")
	}
	if opts.Driver == nil {
		return fmt.Errorf("dashboard: driver is required")
	}
	if opts.Port <= 0 {
		opts.Port = 8080
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &server{
		db:         opts.DB,
		driver:     opts.Driver,
		scheduler:  opts.Scheduler,
		scheduleID: opts.ScheduleID,
	}
	s.registerRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: router,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Dashboard API running at http://localhost:%d\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

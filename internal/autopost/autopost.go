// Package autopost is the local fallback publisher: when no external
// scheduler is wired, it publishes READY_TO_POST items on a cron schedule,
// honoring the configured posting window and daily limit.
package autopost

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/contentflowhq/contentflow/internal/config"
	"github.com/contentflowhq/contentflow/internal/models"
	"github.com/contentflowhq/contentflow/internal/pipeline"
	"github.com/contentflowhq/contentflow/internal/store"
)

// DefaultCron fires at the top of every hour.
const DefaultCron = "0 * * * *"

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Daemon publishes due items on a schedule.
type Daemon struct {
	db     *gorm.DB
	driver *pipeline.Driver
	cfg    config.PipelineConfig
	expr   string
	out    io.Writer
	now    func() time.Time
}

// Opts holds parameters for creating a Daemon.
type Opts struct {
	DB       *gorm.DB
	Driver   *pipeline.Driver
	Pipeline config.PipelineConfig
	Cron     string // 5-field expression; DefaultCron when empty
	Out      io.Writer
}

// New creates a Daemon.
func New(opts Opts) (*Daemon, error) {
	if opts.DB == nil {
		return nil, fmt.Errorf("autopost: db is required")
	}
	if opts.Driver == nil {
		return nil, fmt.Errorf("autopost: driver is required")
	}
	if opts.Cron == "" {
		opts.Cron = DefaultCron
	}
	if _, err := cronParser.Parse(opts.Cron); err != nil {
		return nil, fmt.Errorf("autopost: invalid cron %q: %w", opts.Cron, err)
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	return &Daemon{
		db:     opts.DB,
		driver: opts.Driver,
		cfg:    opts.Pipeline,
		expr:   opts.Cron,
		out:    opts.Out,
		now:    time.Now,
	}, nil
}

// Run blocks until ctx is cancelled, publishing due items on each cron fire.
func (d *Daemon) Run(ctx context.Context) error {
	fmt.Fprintf(d.out, "Autopost daemon starting (cron %q)...\n", d.expr)

	timer := time.NewTimer(d.nextFire())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintf(d.out, "Autopost daemon stopped.\n")
			return nil
		case <-timer.C:
			n, err := d.PublishDue(ctx)
			if err != nil {
				log.Printf("autopost: publish run: %v", err)
			}
			if n > 0 {
				fmt.Fprintf(d.out, "Autopost published %d item(s)\n", n)
			}
			timer.Reset(d.nextFire())
		}
	}
}

func (d *Daemon) nextFire() time.Duration {
	sched, err := cronParser.Parse(d.expr)
	if err != nil {
		return time.Hour
	}
	wait := time.Until(sched.Next(d.now()))
	if wait <= 0 {
		wait = time.Minute
	}
	return wait
}

// PublishDue runs a single publish pass: inside the posting window, up to
// max_process_per_run READY_TO_POST items, stopping at the daily post limit.
// Returns the number of items attempted.
func (d *Daemon) PublishDue(ctx context.Context) (int, error) {
	now := d.now()
	if !d.inWindow(now) {
		return 0, nil
	}

	budget := d.cfg.MaxProcessPerRun
	if budget <= 0 {
		budget = 5
	}
	if d.cfg.DailyPostLimit > 0 {
		posted, err := d.postedToday(now)
		if err != nil {
			return 0, err
		}
		remaining := d.cfg.DailyPostLimit - posted
		if remaining <= 0 {
			return 0, nil
		}
		if remaining < budget {
			budget = remaining
		}
	}

	ready, err := store.List(d.db, store.ListFilters{
		Stage:     models.StageReadyToPost,
		SortField: "published_at",
		SortAsc:   true,
	})
	if err != nil {
		return 0, err
	}
	if len(ready) > budget {
		ready = ready[:budget]
	}
	if len(ready) == 0 {
		return 0, nil
	}

	videos := make([]*models.Video, len(ready))
	for i := range ready {
		videos[i] = &ready[i]
	}
	return len(videos), d.driver.BulkAdvance(ctx, videos, d.driver.Publish, nil)
}

// inWindow reports whether t falls inside the posting hours. A zero window
// means always on.
func (d *Daemon) inWindow(t time.Time) bool {
	start, end := d.cfg.PostingStartHour, d.cfg.PostingEndHour
	if start == 0 && end == 0 {
		return true
	}
	h := t.Hour()
	return h >= start && h < end
}

// postedToday counts items published to WordPress since local midnight.
func (d *Daemon) postedToday(now time.Time) (int, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var count int64
	if err := d.db.Model(&models.Video{}).
		Where("stage = ? AND published_at_wp >= ?", models.StagePosted, midnight).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("autopost: count posted today: %w", err)
	}
	return int(count), nil
}

package pipeline

import (
	"context"
	"errors"

	"github.com/contentflowhq/contentflow/internal/models"
)

// Op is a single-item pipeline operation suitable for bulk runs.
type Op func(ctx context.Context, v *models.Video) error

// ProgressFunc is called before each item in a bulk run. Current is 1-based.
type ProgressFunc func(p Progress)

// BulkAdvance runs op over videos strictly one at a time, in order. Items
// whose agent call fails are left in ERROR by the op itself and the run
// continues; only infrastructure errors are collected and joined. The
// tracker's bulk projection is kept current for UI surfaces.
func (d *Driver) BulkAdvance(ctx context.Context, videos []*models.Video, op Op, progress ProgressFunc) error {
	d.tracker.StartBulk(len(videos))
	defer d.tracker.EndBulk()

	var errs []error
	for i, v := range videos {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		p := Progress{Current: i + 1, Total: len(videos)}
		d.tracker.UpdateBulk(p.Current)
		if progress != nil {
			progress(p)
		}
		if err := op(ctx, v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

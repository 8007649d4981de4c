package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/pfrederiksen/sharif-course-watch/internal/course"
	"github.com/pfrederiksen/sharif-course-watch/internal/notifier"
	"github.com/pfrederiksen/sharif-course-watch/internal/scraper"
	"github.com/pfrederiksen/sharif-course-watch/internal/storage"
	"github.com/pfrederiksen/sharif-course-watch/internal/telegram"
)

// departmentPause spaces out department fetches so a full pass does not
// hammer the registration system.
const departmentPause = 25 * time.Second

// Fetcher is the slice of the scraper the watcher drives.
type Fetcher interface {
	Login(ctx context.Context) error
	FetchDepartment(ctx context.Context, depCode int, depName string, snap course.Snapshot) (int, error)
}

// Watcher runs extraction passes: fetch every watched department into a
// snapshot, persist it, diff against the previous snapshot and deliver the
// rendered report.
type Watcher struct {
	fetcher  Fetcher
	store    *storage.Store
	notifier notifier.Notifier
	limiter  *rate.Limiter
}

// New creates a Watcher over the given collaborators.
func New(fetcher Fetcher, store *storage.Store, n notifier.Notifier) *Watcher {
	return &Watcher{
		fetcher:  fetcher,
		store:    store,
		notifier: n,
		limiter:  rate.NewLimiter(rate.Every(departmentPause), 1),
	}
}

// RunOnce performs one full pass. Any fetch failure aborts the pass before
// the snapshot is saved: a partial snapshot would make every missing
// department's courses look removed on the next diff.
func (w *Watcher) RunOnce(ctx context.Context) error {
	started := time.Now()
	if err := w.fetcher.Login(ctx); err != nil {
		return fmt.Errorf("logging in: %w", err)
	}

	snap := course.NewSnapshot()
	for _, depCode := range scraper.WatchedDepartmentCodes() {
		if err := w.limiter.Wait(ctx); err != nil {
			return err
		}
		depName := scraper.WatchedDepartments[depCode]
		count, err := w.fetcher.FetchDepartment(ctx, depCode, depName, snap)
		if err != nil {
			return fmt.Errorf("department %d: %w", depCode, err)
		}
		log.WithFields(log.Fields{
			"department": scraper.HumanizeDepartment(depName),
			"courses":    count,
		}).Info("fetched department")
	}
	log.WithFields(log.Fields{
		"courses": len(snap),
		"took":    time.Since(started).Round(time.Second),
	}).Info("pass complete")

	if err := w.store.Save(snap); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	previous, err := w.store.LoadPrevious()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Info("no previous snapshot, nothing to compare against")
			return nil
		}
		return fmt.Errorf("loading previous snapshot: %w", err)
	}
	current, err := w.store.LoadCurrent()
	if err != nil {
		return fmt.Errorf("loading current snapshot: %w", err)
	}

	return w.report(previous, current)
}

// report diffs the two snapshots and delivers the rendered blocks. An empty
// diff sends nothing.
func (w *Watcher) report(previous, current course.Snapshot) error {
	diff := course.Diff(previous, current)
	if diff.Empty() {
		log.Info("no changes detected")
		return nil
	}

	header := telegram.FormatTimeRange(
		storage.ModTime(w.store.OldPath()),
		storage.ModTime(w.store.CurrentPath()),
	)
	blocks := telegram.FormatReport(diff)
	if err := w.notifier.Notify(header, blocks); err != nil {
		return fmt.Errorf("delivering report: %w", err)
	}
	log.WithField("departments", len(blocks)).Info("report delivered")
	return nil
}

// Watch runs passes until the context is cancelled, pausing period between
// them. A failed pass is logged and the loop keeps going; only cancellation
// ends it.
func (w *Watcher) Watch(ctx context.Context, period time.Duration) error {
	for {
		if err := w.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.WithError(err).Error("pass failed")
		}

		log.WithField("period", period).Info("waiting for next pass")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(period):
		}
	}
}

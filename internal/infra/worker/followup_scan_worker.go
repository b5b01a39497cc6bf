package worker

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/maisonsia/bd-crm/internal/entity"
	"github.com/maisonsia/bd-crm/internal/infra/http/middleware"
	"github.com/maisonsia/bd-crm/internal/usecase"
)

// ScanWorker triggers the follow-up scan once a day at a fixed wall-clock
// time. The scan itself lives in the usecase layer; this is only the timer.
type ScanWorker struct {
	scan   *usecase.FollowUpScanUseCase
	hour   int
	minute int

	running atomic.Bool
}

func NewScanWorker(scan *usecase.FollowUpScanUseCase, hour, minute int) *ScanWorker {
	return &ScanWorker{
		scan:   scan,
		hour:   hour,
		minute: minute,
	}
}

func (w *ScanWorker) Start(ctx context.Context) {
	log.Printf("follow-up scan worker started (daily at %02d:%02d)", w.hour, w.minute)

	for {
		wait := time.Until(w.nextRun(time.Now()))
		timer := time.NewTimer(wait)

		select {
		case <-ctx.Done():
			timer.Stop()
			log.Println("follow-up scan worker stopped")
			return
		case <-timer.C:
			w.RunOnce(ctx)
		}
	}
}

// nextRun returns the next occurrence of the configured wall-clock time
// strictly after now.
func (w *ScanWorker) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), w.hour, w.minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// RunOnce executes a single scan. A second invocation while one is in flight
// is dropped, so a double-fired timer cannot run two scans concurrently.
func (w *ScanWorker) RunOnce(ctx context.Context) {
	if !w.running.CompareAndSwap(false, true) {
		log.Println("follow-up scan already running, skipping invocation")
		return
	}
	defer w.running.Store(false)

	start := time.Now()
	summary, err := w.scan.Execute(ctx, start)
	middleware.ObserveScanDuration(time.Since(start).Seconds())

	if err != nil {
		log.Printf("follow-up scan failed: %v", err)
		return
	}

	for _, result := range summary.Results {
		status := entity.FollowUpStatusSent
		if !result.Sent {
			status = entity.FollowUpStatusFailed
		}
		middleware.RecordFollowUpDispatch(string(result.Category), status)
	}
}

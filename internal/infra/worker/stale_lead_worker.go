package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/refinly/loan-referral/internal/entity"
	"go.uber.org/zap"
)

const maxDigestLines = 10

// Broadcaster is satisfied by usecase.DirectAdminNotifier.
type Broadcaster interface {
	Broadcast(ctx context.Context, body string) (delivered, attempted int)
}

// StaleLeadWorker periodically reminds admins of leads nobody picked up.
type StaleLeadWorker struct {
	repo         entity.LeadRepositoryInterface
	admins       Broadcaster
	logger       *zap.Logger
	tickInterval time.Duration
	staleAfter   time.Duration
	now          func() time.Time
}

func NewStaleLeadWorker(repo entity.LeadRepositoryInterface, admins Broadcaster, interval, staleAfter time.Duration, logger *zap.Logger) *StaleLeadWorker {
	return &StaleLeadWorker{
		repo:         repo,
		admins:       admins,
		logger:       logger,
		tickInterval: interval,
		staleAfter:   staleAfter,
		now:          time.Now,
	}
}

// Start runs until ctx is cancelled. A non-positive interval disables it.
func (w *StaleLeadWorker) Start(ctx context.Context) {
	if w.tickInterval <= 0 {
		w.logger.Info("stale lead worker disabled")
		return
	}

	w.logger.Info("stale lead worker started",
		zap.Duration("interval", w.tickInterval),
		zap.Duration("stale_after", w.staleAfter),
	)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stale lead worker stopped")
			return
		case <-ticker.C:
			w.remindStaleLeads(ctx)
		}
	}
}

func (w *StaleLeadWorker) remindStaleLeads(ctx context.Context) {
	cutoff := w.now().Add(-w.staleAfter)

	leads, err := w.repo.ListStale(ctx, entity.LeadStatusNew, cutoff)
	if err != nil {
		w.logger.Error("list stale leads failed", zap.Error(err))
		return
	}
	if len(leads) == 0 {
		return
	}

	delivered, attempted := w.admins.Broadcast(ctx, FormatStaleDigest(leads, w.staleAfter))
	w.logger.Info("stale lead digest sent",
		zap.Int("stale_leads", len(leads)),
		zap.Int("delivered", delivered),
		zap.Int("attempted", attempted),
	)
}

// FormatStaleDigest lists at most ten leads, oldest first as given.
func FormatStaleDigest(leads []*entity.Lead, staleAfter time.Duration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "⏰ *%d lead(s) still New after %s*\n\n", len(leads), staleAfter)

	for i, l := range leads {
		if i == maxDigestLines {
			fmt.Fprintf(&b, "...and %d more\n", len(leads)-maxDigestLines)
			break
		}
		fmt.Fprintf(&b, "#%d %s (%d)\n", l.ID, l.Name, l.Age)
	}
	return b.String()
}

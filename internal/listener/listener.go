// Package listener runs the polling loop that detects newly paid orders and
// fans them out to the configured sinks.
package listener

import (
	"context"
	"fmt"
	"sync"
	"time"

	"orderwatch/internal/logger"
	"orderwatch/internal/models"
)

// OrderClient is the slice of the vendor client the loop needs.
type OrderClient interface {
	ListRecentOrders(ctx context.Context, from, to time.Time) ([]string, error)
	FetchOrderDetails(ctx context.Context, ids []string) ([]models.Order, error)
}

// Sink receives one order per new-order detection, synchronously. A failing
// sink is logged and never blocks the remaining orders or sinks.
type Sink interface {
	Name() string
	HandleOrder(ctx context.Context, order models.Order) error
}

// The warm-up query looks this far back, purely to seed the seen set.
const initLookBack = 10 * time.Minute

// Listener owns the seen set. It grows for the lifetime of the process and
// is never evicted; an id in it is never re-reported as new.
type Listener struct {
	client   OrderClient
	sinks    []Sink
	logger   *logger.Logger
	interval time.Duration
	now      func() time.Time

	seen     map[string]struct{}
	stop     chan struct{}
	stopOnce sync.Once
}

func New(client OrderClient, interval time.Duration, logger *logger.Logger, sinks ...Sink) *Listener {
	return &Listener{
		client:   client,
		sinks:    sinks,
		logger:   logger,
		interval: interval,
		now:      time.Now,
		seen:     make(map[string]struct{}),
		stop:     make(chan struct{}),
	}
}

// Run seeds the seen set, then polls until the context is cancelled or Stop
// is called. A cycle in flight always completes before the loop exits.
func (l *Listener) Run(ctx context.Context) error {
	l.logger.Info("seeding seen set from existing orders...")
	if err := l.seed(ctx); err != nil {
		return fmt.Errorf("failed to seed seen set: %w", err)
	}
	l.logger.Info("seeded %d existing orders; detecting new orders from now on", len(l.seen))

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("listener stopping: %v", ctx.Err())
			return nil
		case <-l.stop:
			l.logger.Info("listener stopping: stop requested")
			return nil
		case <-ticker.C:
			l.poll(ctx)
		}
	}
}

// Stop requests a graceful exit. Safe to call more than once.
func (l *Listener) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// seed runs the one-shot warm-up list query. Orders already present must not
// be re-reported, so their ids are registered without any detail fetch or
// notification. An error here means the loop would mis-report everything as
// new and is fatal to startup.
func (l *Listener) seed(ctx context.Context) error {
	now := l.now()
	ids, err := l.client.ListRecentOrders(ctx, now.Add(-initLookBack), now)
	if err != nil {
		return err
	}
	for _, id := range ids {
		l.seen[id] = struct{}{}
	}
	return nil
}

// poll runs one cycle: list over the look-back window, diff against the seen
// set, fetch details for the unseen ids, emit each order to every sink. Any
// step failure aborts only this cycle.
func (l *Listener) poll(ctx context.Context) {
	now := l.now()

	// Twice the interval covers clock and scheduling slack at the window edge.
	ids, err := l.client.ListRecentOrders(ctx, now.Add(-2*l.interval), now)
	if err != nil {
		l.logger.Error("order list query failed: %v", err)
		return
	}

	newIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := l.seen[id]; !ok {
			newIDs = append(newIDs, id)
		}
	}
	for _, id := range ids {
		l.seen[id] = struct{}{}
	}

	if len(newIDs) == 0 {
		l.logger.Debug("poll %s: %d orders listed, no new orders", now.Format("15:04:05"), len(ids))
		return
	}
	l.logger.Info("poll %s: %d orders listed, %d new", now.Format("15:04:05"), len(ids), len(newIDs))

	orders, err := l.client.FetchOrderDetails(ctx, newIDs)
	if err != nil {
		l.logger.Error("order detail query failed: %v", err)
		return
	}

	for _, order := range orders {
		for _, sink := range l.sinks {
			if err := sink.HandleOrder(ctx, order); err != nil {
				l.logger.Error("sink %s failed for order %s: %v", sink.Name(), order.ProductOrderID, err)
			}
		}
	}
}

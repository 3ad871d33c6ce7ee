package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/boutiq/storefront/internal/domain/model"
)

// OrderFacade exposes the subset of application functionality required by the expirer.
type OrderFacade interface {
	ExpireStaleOrders(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error)
}

// OrderExpirer periodically cancels unpaid orders whose checkout was
// abandoned and returns their reserved stock to the catalog.
type OrderExpirer struct {
	facade       OrderFacade
	pollInterval time.Duration
	expiry       time.Duration
	batchSize    int
	logger       *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewOrderExpirer constructs the expiry sweeper.
func NewOrderExpirer(facade OrderFacade, pollInterval, expiry time.Duration, batchSize int, logger *slog.Logger) *OrderExpirer {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &OrderExpirer{
		facade:       facade,
		pollInterval: pollInterval,
		expiry:       expiry,
		batchSize:    batchSize,
		logger:       logger,
	}
}

// Start launches background sweeping.
func (e *OrderExpirer) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	e.wg.Add(1)
	go e.run(runCtx)
}

// Stop waits for the sweeper to finish.
func (e *OrderExpirer) Stop() {
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.mu.Unlock()

	e.wg.Wait()
}

func (e *OrderExpirer) run(ctx context.Context) {
	defer e.wg.Done()
	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.sweep(ctx)
		}
	}
}

func (e *OrderExpirer) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-e.expiry)
	expired, err := e.facade.ExpireStaleOrders(ctx, cutoff, e.batchSize)
	if err != nil {
		e.logger.Error("order expiry sweep failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range expired {
		e.logger.Info("cancelled unpaid order",
			slog.String("order_number", order.OrderNumber),
		)
	}
}

package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/boutiq/storefront/internal/domain/model"
)

type stubOrderFacade struct {
	fn func(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error)
}

func (s stubOrderFacade) ExpireStaleOrders(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	return s.fn(ctx, cutoff, limit)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOrderExpirerSweeps(t *testing.T) {
	calls := make(chan time.Time, 8)
	expirer := NewOrderExpirer(stubOrderFacade{fn: func(_ context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
		if limit != 4 {
			t.Errorf("unexpected batch size %d", limit)
		}
		select {
		case calls <- cutoff:
		default:
		}
		return []model.Order{{OrderNumber: "ORD-20260830-001", OrderStatus: model.OrderStatusCancelled}}, nil
	}}, 5*time.Millisecond, 30*time.Minute, 4, discardLogger())

	expirer.Start(context.Background())
	defer expirer.Stop()

	select {
	case cutoff := <-calls:
		if age := time.Since(cutoff); age < 29*time.Minute || age > 31*time.Minute {
			t.Fatalf("cutoff not derived from expiry window: %v ago", age)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a sweep within the poll interval")
	}
}

func TestOrderExpirerSurvivesSweepErrors(t *testing.T) {
	calls := make(chan struct{}, 8)
	expirer := NewOrderExpirer(stubOrderFacade{fn: func(context.Context, time.Time, int) ([]model.Order, error) {
		select {
		case calls <- struct{}{}:
		default:
		}
		return nil, errors.New("db down")
	}}, 5*time.Millisecond, time.Minute, 1, discardLogger())

	expirer.Start(context.Background())
	defer expirer.Stop()

	for i := 0; i < 2; i++ {
		select {
		case <-calls:
		case <-time.After(time.Second):
			t.Fatal("expected sweeps to continue after an error")
		}
	}
}

func TestOrderExpirerStopHaltsSweeping(t *testing.T) {
	calls := make(chan struct{}, 64)
	expirer := NewOrderExpirer(stubOrderFacade{fn: func(context.Context, time.Time, int) ([]model.Order, error) {
		select {
		case calls <- struct{}{}:
		default:
		}
		return nil, nil
	}}, 5*time.Millisecond, time.Minute, 1, discardLogger())

	expirer.Start(context.Background())

	select {
	case <-calls:
	case <-time.After(time.Second):
		t.Fatal("expected at least one sweep before stop")
	}

	expirer.Stop()

	// Drain anything in flight, then confirm no further sweeps arrive.
	for {
		select {
		case <-calls:
			continue
		case <-time.After(50 * time.Millisecond):
		}
		break
	}
	select {
	case <-calls:
		t.Fatal("sweeper kept running after Stop")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestOrderExpirerDefaultsBatchSize(t *testing.T) {
	expirer := NewOrderExpirer(stubOrderFacade{fn: func(context.Context, time.Time, int) ([]model.Order, error) {
		return nil, nil
	}}, time.Minute, time.Minute, 0, discardLogger())
	if expirer.batchSize != 1 {
		t.Fatalf("expected batch size floor of 1, got %d", expirer.batchSize)
	}
}

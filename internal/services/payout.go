package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Renal37/dress-settlement/internal/logger"
	"github.com/Renal37/dress-settlement/internal/models"
	"go.uber.org/zap"
)

const (
	defaultPayoutAttempts = 5
	defaultPayoutBackoff  = 2 * time.Second
)

// PayoutService hands payouts of completed orders to a sink in the background.
// Failed deliveries are retried with a linearly growing delay.
type PayoutService struct {
	queue       payoutJobQueue
	sink        payoutSink
	maxAttempts int
	backoff     time.Duration
}

type payoutJobQueue interface {
	Enqueue(job Job) error

	ScheduleJob(job Job, delay time.Duration) error
}

type payoutSink interface {
	Send(ctx context.Context, payout models.Payout) error
}

type PayoutOption func(ps *PayoutService)

func WithPayoutRetries(maxAttempts int, backoff time.Duration) PayoutOption {
	return func(ps *PayoutService) {
		if maxAttempts > 0 {
			ps.maxAttempts = maxAttempts
		}
		if backoff >= 0 {
			ps.backoff = backoff
		}
	}
}

func NewPayoutService(queue payoutJobQueue, sink payoutSink, options ...PayoutOption) *PayoutService {
	ps := &PayoutService{
		queue:       queue,
		sink:        sink,
		maxAttempts: defaultPayoutAttempts,
		backoff:     defaultPayoutBackoff,
	}

	for _, option := range options {
		option(ps)
	}

	return ps
}

// TriggerPayout queues the payout and returns right away.
func (ps *PayoutService) TriggerPayout(_ context.Context, payout models.Payout) error {
	if err := ps.queue.Enqueue(ps.deliver(payout, 1)); err != nil {
		return fmt.Errorf("failed to enqueue payout for order %s: %w", payout.OrderID, err)
	}

	return nil
}

func (ps *PayoutService) deliver(payout models.Payout, attempt int) Job {
	return func(ctx context.Context) {
		err := ps.sink.Send(ctx, payout)
		if err == nil {
			logger.Log.Info("payout dispatched",
				zap.String("orderID", payout.OrderID),
				zap.Int("attempt", attempt),
			)
			return
		}

		if attempt >= ps.maxAttempts {
			logger.Log.Error("payout dropped after retries",
				zap.String("orderID", payout.OrderID),
				zap.Int("attempts", attempt),
				zap.Error(err),
			)
			return
		}

		delay := ps.backoff * time.Duration(attempt)
		logger.Log.Warn("failed to dispatch payout, retrying",
			zap.String("orderID", payout.OrderID),
			zap.Int("attempt", attempt),
			zap.Duration("retryIn", delay),
			zap.Error(err),
		)
		if err := ps.queue.ScheduleJob(ps.deliver(payout, attempt+1), delay); err != nil {
			logger.Log.Error("payout dropped",
				zap.String("orderID", payout.OrderID),
				zap.String("sellerRef", payout.SellerRef),
				zap.Int64("sellerAmount", payout.SellerAmount),
				zap.Int("attempts", attempt),
				zap.Error(err),
			)
		}
	}
}

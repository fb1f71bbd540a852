package payout

import (
	"context"

	"github.com/Renal37/dress-settlement/internal/logger"
	"github.com/Renal37/dress-settlement/internal/models"
	"go.uber.org/zap"
)

// Sink delivers a payout request to whatever moves the money.
type Sink interface {
	Send(ctx context.Context, payout models.Payout) error

	Close() error
}

// LogSink only records payout requests. It is used when no broker is configured.
type LogSink struct{}

func NewLogSink() *LogSink {
	return &LogSink{}
}

func (LogSink) Send(_ context.Context, payout models.Payout) error {
	logger.Log.Info("payout requested",
		zap.String("orderID", payout.OrderID),
		zap.String("sellerRef", payout.SellerRef),
		zap.Int64("amount", payout.Amount),
		zap.Int64("platformFee", payout.PlatformFee),
		zap.Int64("sellerAmount", payout.SellerAmount),
	)
	return nil
}

func (LogSink) Close() error {
	return nil
}

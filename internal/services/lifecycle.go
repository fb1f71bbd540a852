package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Renal37/dress-settlement/internal/database"
	"github.com/Renal37/dress-settlement/internal/logger"
	"github.com/Renal37/dress-settlement/internal/models"
	"go.uber.org/zap"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// LifecycleService moves orders through their statuses and triggers the
// seller payout when an order is completed.
type LifecycleService struct {
	storage lifecycleStorage
	payouts models.PayoutTrigger
	fees    feeCalculator
	now     func() time.Time
}

type lifecycleStorage interface {
	GetOrder(ctx context.Context, orderID string) (models.Order, error)

	UpdateOrder(ctx context.Context, orderID string, mutate func(order *models.Order) error) (models.Order, error)
}

type feeCalculator interface {
	PlatformFee(amount int64) int64

	SellerAmount(amount int64) int64
}

func NewLifecycleService(storage lifecycleStorage, payouts models.PayoutTrigger, fees feeCalculator) *LifecycleService {
	return &LifecycleService{
		storage: storage,
		payouts: payouts,
		fees:    fees,
		now:     time.Now,
	}
}

func (ls *LifecycleService) GetOrder(ctx context.Context, orderID string) (models.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return models.Order{}, ErrOrderNotFound
	}

	order, err := ls.storage.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, database.ErrOrderNotFound) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	return order, nil
}

// ApplyTransition validates and applies a status change in one atomic step.
// The tracking number is only written when it isn't empty.
func (ls *LifecycleService) ApplyTransition(ctx context.Context, orderID string, status models.OrderStatus, trackingNumber string) (models.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return models.Order{}, ErrOrderNotFound
	}

	order, err := ls.storage.UpdateOrder(ctx, orderID, func(order *models.Order) error {
		if !order.Status.CanTransitionTo(status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
		}

		order.Status = status
		if trackingNumber != "" {
			order.TrackingNumber = trackingNumber
		}

		now := ls.now().UTC().Truncate(time.Microsecond)
		if now.Before(order.UpdatedAt) {
			now = order.UpdatedAt
		}
		order.UpdatedAt = now

		return nil
	})
	if err != nil {
		if errors.Is(err, database.ErrOrderNotFound) {
			return models.Order{}, ErrOrderNotFound
		}
		if errors.Is(err, ErrInvalidTransition) {
			return models.Order{}, err
		}
		return models.Order{}, fmt.Errorf("failed to update order: %w", err)
	}

	logger.Log.Info("order status changed",
		zap.String("orderID", order.ID),
		zap.String("status", string(order.Status)),
	)

	if order.Status == models.StatusCompleted {
		payout := ls.buildPayout(order)
		if err := ls.payouts.TriggerPayout(ctx, payout); err != nil {
			logger.Log.Error("failed to trigger payout",
				zap.String("orderID", order.ID),
				zap.Error(err),
			)
		}
	}

	return order, nil
}

// buildPayout splits the order amount using the fee frozen at authorization time.
func (ls *LifecycleService) buildPayout(order models.Order) models.Payout {
	fee, err := strconv.ParseInt(order.Metadata[models.MetadataPlatformFee], 10, 64)
	if err != nil || fee < 0 || fee > order.Amount {
		fee = ls.fees.PlatformFee(order.Amount)
		logger.Log.Warn("order has no usable frozen platform fee, recalculated",
			zap.String("orderID", order.ID),
			zap.String("platformFee", order.Metadata[models.MetadataPlatformFee]),
			zap.Int64("recalculatedFee", fee),
		)
	}

	return models.Payout{
		OrderID:      order.ID,
		SellerRef:    order.Metadata[models.MetadataSellerRef],
		Amount:       order.Amount,
		PlatformFee:  fee,
		SellerAmount: order.Amount - fee,
	}
}

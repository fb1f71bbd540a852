package models

import (
	"context"
)

//go:generate mockgen -destination=mocks/mock_settlement.go . SettlementService
type SettlementService interface {
	CreateAuthorization(ctx context.Context, req AuthorizationRequest) (AuthorizationResult, error)

	ConfirmPayment(ctx context.Context, authorizationID string) (SettlementResult, error)
}

//go:generate mockgen -destination=mocks/mock_lifecycle.go . LifecycleService
type LifecycleService interface {
	ApplyTransition(ctx context.Context, orderID string, status OrderStatus, trackingNumber string) (Order, error)

	GetOrder(ctx context.Context, orderID string) (Order, error)
}

//go:generate mockgen -destination=mocks/mock_gateway.go . PaymentGateway
type PaymentGateway interface {
	CreateAuthorization(ctx context.Context, amount int64, metadata map[string]string) (AuthorizationHandle, error)

	RetrieveAuthorization(ctx context.Context, authorizationID string) (Authorization, error)
}

//go:generate mockgen -destination=mocks/mock_payout.go . PayoutTrigger
type PayoutTrigger interface {
	TriggerPayout(ctx context.Context, payout Payout) error
}

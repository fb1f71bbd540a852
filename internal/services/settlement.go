package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Renal37/dress-settlement/internal/logger"
	"github.com/Renal37/dress-settlement/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrMissingAuthorization = errors.New("authorization id is missing")
	ErrPaymentNotCompleted  = errors.New("payment isn't completed")
	ErrGateway              = errors.New("payment gateway error")
)

// authorizationLookupTimeout bounds a shared gateway lookup once it no longer
// follows the cancellation of the caller that started it.
const authorizationLookupTimeout = 30 * time.Second

// orderNamespace seeds the order ids derived from authorization ids.
var orderNamespace = uuid.MustParse("6f1c2a52-8d3e-4a57-9b7c-0e2d5f4a9c31")

// OrderIDFor returns the id of the order settled from authorizationID.
func OrderIDFor(authorizationID string) string {
	return uuid.NewSHA1(orderNamespace, []byte(authorizationID)).String()
}

type SettlementService struct {
	storage settlementStorage
	gateway models.PaymentGateway
	fees    feeCalculator
	lookups singleflight.Group
	now     func() time.Time
}

type settlementStorage interface {
	GetOrder(ctx context.Context, orderID string) (models.Order, error)

	InsertOrderIfAbsent(ctx context.Context, order models.Order) (bool, error)
}

func NewSettlementService(storage settlementStorage, gateway models.PaymentGateway, fees feeCalculator) *SettlementService {
	return &SettlementService{
		storage: storage,
		gateway: gateway,
		fees:    fees,
		now:     time.Now,
	}
}

func (ss *SettlementService) CreateAuthorization(ctx context.Context, req models.AuthorizationRequest) (models.AuthorizationResult, error) {
	if req.Amount <= 0 {
		return models.AuthorizationResult{}, ErrInvalidAmount
	}

	fee := ss.fees.PlatformFee(req.Amount)
	metadata := map[string]string{
		models.MetadataProductRef:  req.ProductRef,
		models.MetadataSellerRef:   req.SellerRef,
		models.MetadataPlatformFee: strconv.FormatInt(fee, 10),
	}

	handle, err := ss.gateway.CreateAuthorization(ctx, req.Amount, metadata)
	if err != nil {
		return models.AuthorizationResult{}, fmt.Errorf("%w: %w", ErrGateway, err)
	}

	logger.Log.Info("authorization created",
		zap.String("authorizationID", handle.ID),
		zap.Int64("amount", req.Amount),
		zap.Int64("platformFee", fee),
	)

	return models.AuthorizationResult{
		AuthorizationID: handle.ID,
		ClientSecret:    handle.ClientSecret,
		PlatformFee:     fee,
		SellerAmount:    ss.fees.SellerAmount(req.Amount),
	}, nil
}

// ConfirmPayment turns a succeeded authorization into a paid order.
// Confirming the same authorization again returns the existing order marked as duplicate.
func (ss *SettlementService) ConfirmPayment(ctx context.Context, authorizationID string) (models.SettlementResult, error) {
	authorizationID = strings.TrimSpace(authorizationID)
	if authorizationID == "" {
		return models.SettlementResult{}, ErrMissingAuthorization
	}

	authorization, err := ss.retrieveAuthorization(ctx, authorizationID)
	if err != nil {
		return models.SettlementResult{}, fmt.Errorf("%w: %w", ErrGateway, err)
	}

	if authorization.Status != models.AuthorizationSucceeded {
		return models.SettlementResult{}, fmt.Errorf("%w: status is %s", ErrPaymentNotCompleted, authorization.Status)
	}

	if authorization.Amount < 0 {
		return models.SettlementResult{}, fmt.Errorf("%w: negative amount %d", ErrGateway, authorization.Amount)
	}

	now := ss.now().UTC().Truncate(time.Microsecond)
	order := models.Order{
		ID:              OrderIDFor(authorizationID),
		AuthorizationID: authorizationID,
		Status:          models.StatusPaid,
		Amount:          authorization.Amount,
		Metadata:        authorization.Metadata,
		CreatedAt:       now,
		UpdatedAt:       now,
	}.Clone()
	if order.Metadata == nil {
		order.Metadata = map[string]string{}
	}

	created, err := ss.storage.InsertOrderIfAbsent(ctx, order)
	if err != nil {
		return models.SettlementResult{}, fmt.Errorf("failed to store order: %w", err)
	}

	if !created {
		existing, err := ss.storage.GetOrder(ctx, order.ID)
		if err != nil {
			return models.SettlementResult{}, fmt.Errorf("failed to get existing order: %w", err)
		}

		logger.Log.Info("payment already confirmed",
			zap.String("authorizationID", authorizationID),
			zap.String("orderID", existing.ID),
		)

		return settlementResult(existing, true), nil
	}

	logger.Log.Info("order created",
		zap.String("authorizationID", authorizationID),
		zap.String("orderID", order.ID),
		zap.Int64("amount", order.Amount),
	)

	return settlementResult(order, false), nil
}

// retrieveAuthorization coalesces concurrent lookups of the same authorization.
// The shared call outlives any single caller's cancellation; each caller still
// stops waiting when its own ctx is done.
func (ss *SettlementService) retrieveAuthorization(ctx context.Context, authorizationID string) (models.Authorization, error) {
	lookup := ss.lookups.DoChan(authorizationID, func() (interface{}, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), authorizationLookupTimeout)
		defer cancel()

		return ss.gateway.RetrieveAuthorization(lookupCtx, authorizationID)
	})

	select {
	case <-ctx.Done():
		return models.Authorization{}, ctx.Err()
	case result := <-lookup:
		if result.Err != nil {
			return models.Authorization{}, result.Err
		}
		return result.Val.(models.Authorization), nil
	}
}

func settlementResult(order models.Order, duplicate bool) models.SettlementResult {
	return models.SettlementResult{
		OrderID:   order.ID,
		Status:    order.Status,
		Amount:    order.Amount,
		Metadata:  order.Metadata,
		Duplicate: duplicate,
	}
}

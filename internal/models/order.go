package models

import "time"

type OrderStatus string

const (
	StatusPaid      OrderStatus = "paid"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// orderTransitions lists the allowed destinations for every status.
// Terminal statuses have no entry.
var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusPaid:      {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered, StatusCancelled},
	StatusDelivered: {StatusCompleted},
}

// CanTransitionTo reports whether the order may move from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPaid, StatusShipped, StatusDelivered, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Metadata keys attached to an authorization and copied onto the order.
const (
	MetadataProductRef  = "product_ref"
	MetadataSellerRef   = "seller_ref"
	MetadataPlatformFee = "platform_fee"
)

type Order struct {
	ID              string            `json:"orderId"`
	AuthorizationID string            `json:"authorizationId"`
	Status          OrderStatus       `json:"status"`
	Amount          int64             `json:"amount"`
	TrackingNumber  string            `json:"trackingNumber,omitempty"`
	Metadata        map[string]string `json:"metadata"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// Clone returns a copy that shares no mutable state with o.
func (o Order) Clone() Order {
	if o.Metadata != nil {
		metadata := make(map[string]string, len(o.Metadata))
		for k, v := range o.Metadata {
			metadata[k] = v
		}
		o.Metadata = metadata
	}
	return o
}

// StatusUpdate is the body of an order status change request.
type StatusUpdate struct {
	OrderID        string      `json:"orderId"`
	Status         OrderStatus `json:"status"`
	TrackingNumber string      `json:"trackingNumber,omitempty" validate:"max=64"`
}

// Payout is handed to the payout capability once an order is completed.
type Payout struct {
	OrderID      string `json:"orderId"`
	SellerRef    string `json:"sellerRef"`
	Amount       int64  `json:"amount"`
	PlatformFee  int64  `json:"platformFee"`
	SellerAmount int64  `json:"sellerAmount"`
}

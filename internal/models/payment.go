package models

type AuthorizationStatus string

const (
	AuthorizationPending   AuthorizationStatus = "pending"
	AuthorizationSucceeded AuthorizationStatus = "succeeded"
	AuthorizationFailed    AuthorizationStatus = "failed"
	AuthorizationCanceled  AuthorizationStatus = "canceled"
)

// Authorization is the gateway's record of a payment attempt.
type Authorization struct {
	ID       string
	Status   AuthorizationStatus
	Amount   int64
	Metadata map[string]string
}

// AuthorizationHandle is what the gateway returns when an authorization is created.
type AuthorizationHandle struct {
	ID           string
	ClientSecret string
}

type AuthorizationRequest struct {
	Amount     int64  `json:"amount"`
	ProductRef string `json:"productRef" validate:"required,max=128"`
	SellerRef  string `json:"sellerRef" validate:"required,max=128"`
}

type AuthorizationResult struct {
	AuthorizationID string `json:"authorizationId"`
	ClientSecret    string `json:"clientSecret"`
	PlatformFee     int64  `json:"platformFee"`
	SellerAmount    int64  `json:"sellerAmount"`
}

type PaymentConfirmation struct {
	AuthorizationID string `json:"authorizationId"`
}

// SettlementResult describes the order produced by a payment confirmation.
// Duplicate is set when the authorization had already been confirmed.
type SettlementResult struct {
	OrderID   string            `json:"orderId"`
	Status    OrderStatus       `json:"status"`
	Amount    int64             `json:"amount"`
	Metadata  map[string]string `json:"metadata"`
	Duplicate bool              `json:"duplicate"`
}

package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Renal37/dress-settlement/internal/middlewares"
	"github.com/Renal37/dress-settlement/internal/models"
	"github.com/Renal37/dress-settlement/internal/services"
)

func CreateAuthorization(w http.ResponseWriter, r *http.Request) {
	req, ok := middlewares.GetParsedJSONData[models.AuthorizationRequest](w, r)
	if !ok {
		return
	}

	settlementService := middlewares.GetServiceFromContext[models.SettlementService](w, r, middlewares.SettlementServiceKey)
	if settlementService == nil {
		return
	}

	result, err := (*settlementService).CreateAuthorization(r.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAmount) {
			http.Error(w, "Amount must be positive", http.StatusBadRequest)
			return
		}

		if errors.Is(err, services.ErrGateway) {
			http.Error(w, "Payment gateway is unavailable", http.StatusBadGateway)
			return
		}

		http.Error(w, fmt.Sprintf("Error occurred during creating authorization: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusOK, result)
}

// ConfirmPayment answers 201 for a new order and 200 when the payment was already confirmed.
func ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	req, ok := middlewares.GetParsedJSONData[models.PaymentConfirmation](w, r)
	if !ok {
		return
	}

	settlementService := middlewares.GetServiceFromContext[models.SettlementService](w, r, middlewares.SettlementServiceKey)
	if settlementService == nil {
		return
	}

	result, err := (*settlementService).ConfirmPayment(r.Context(), req.AuthorizationID)
	if err != nil {
		if errors.Is(err, services.ErrMissingAuthorization) {
			http.Error(w, "Authorization id is missing", http.StatusBadRequest)
			return
		}

		if errors.Is(err, services.ErrPaymentNotCompleted) {
			http.Error(w, "Payment isn't completed", http.StatusBadRequest)
			return
		}

		if errors.Is(err, services.ErrGateway) {
			http.Error(w, "Payment gateway is unavailable", http.StatusInternalServerError)
			return
		}

		http.Error(w, fmt.Sprintf("Error occurred during payment confirmation: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	status := http.StatusCreated
	if result.Duplicate {
		status = http.StatusOK
	}

	middlewares.EncodeJSONResponse(w, status, result)
}

package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Renal37/dress-settlement/internal/middlewares"
	"github.com/Renal37/dress-settlement/internal/models"
	"github.com/Renal37/dress-settlement/internal/services"
	"github.com/go-chi/chi/v5"
)

func UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	update, ok := middlewares.GetParsedJSONData[models.StatusUpdate](w, r)
	if !ok {
		return
	}

	lifecycleService := middlewares.GetServiceFromContext[models.LifecycleService](w, r, middlewares.LifecycleServiceKey)
	if lifecycleService == nil {
		return
	}

	order, err := (*lifecycleService).ApplyTransition(r.Context(), update.OrderID, update.Status, update.TrackingNumber)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}

		if errors.Is(err, services.ErrInvalidTransition) {
			http.Error(w, fmt.Sprintf("Status can't be changed to %q", update.Status), http.StatusBadRequest)
			return
		}

		http.Error(w, fmt.Sprintf("Error occurred during updating order: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusOK, order)
}

func GetOrder(w http.ResponseWriter, r *http.Request) {
	lifecycleService := middlewares.GetServiceFromContext[models.LifecycleService](w, r, middlewares.LifecycleServiceKey)
	if lifecycleService == nil {
		return
	}

	order, err := (*lifecycleService).GetOrder(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}

		http.Error(w, fmt.Sprintf("Error occurred during getting order: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusOK, order)
}

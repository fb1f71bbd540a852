package middlewares

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Renal37/dress-settlement/internal/models"
)

type key int

const (
	SettlementServiceKey key = iota
	LifecycleServiceKey
)

func ServiceInjectorMiddleware(
	settlementService models.SettlementService,
	lifecycleService models.LifecycleService,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), SettlementServiceKey, settlementService)
			ctx = context.WithValue(ctx, LifecycleServiceKey, lifecycleService)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetServiceFromContext[Service interface{}](w http.ResponseWriter, r *http.Request, serviceKey key) *Service {
	foundService, ok := r.Context().Value(serviceKey).(Service)

	if !ok {
		http.Error(w, fmt.Sprintf("Service wasn't found in context by key %v", serviceKey), http.StatusInternalServerError)
		return nil
	}

	return &foundService
}

package router

import (
	"net/http"

	"github.com/Renal37/dress-settlement/internal/logger"
	"github.com/Renal37/dress-settlement/internal/middlewares"
	"github.com/Renal37/dress-settlement/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Config struct {
	Endpoint string
}

type Router struct {
	config            Config
	settlementService models.SettlementService
	lifecycleService  models.LifecycleService
}

func New(
	config Config,
	settlementService models.SettlementService,
	lifecycleService models.LifecycleService,
) *Router {
	return &Router{
		config,
		settlementService,
		lifecycleService,
	}
}

func (router *Router) get() chi.Router {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
		middlewares.ServiceInjectorMiddleware(
			router.settlementService,
			router.lifecycleService,
		),
		logger.RequestLogger,
	)

	r.Route("/api/payments", func(r chi.Router) {
		r.With(middlewares.JSONMiddleware[models.AuthorizationRequest]).Post("/authorizations", CreateAuthorization)
		r.With(middlewares.JSONMiddleware[models.PaymentConfirmation]).Post("/confirm", ConfirmPayment)
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.With(middlewares.JSONMiddleware[models.StatusUpdate]).Patch("/status", UpdateOrderStatus)
		r.Get("/{orderID}", GetOrder)
	})

	return r
}

func (router *Router) Run() {
	logger.Log.Info("running server", zap.String("endpoint", router.config.Endpoint))

	if err := http.ListenAndServe(router.config.Endpoint, router.get()); err != nil {
		logger.Log.Fatal("server stopped", zap.Error(err))
	}
}

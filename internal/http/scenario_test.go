package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Renal37/dress-settlement/internal/database"
	"github.com/Renal37/dress-settlement/internal/fees"
	"github.com/Renal37/dress-settlement/internal/gateway"
	"github.com/Renal37/dress-settlement/internal/models"
	"github.com/Renal37/dress-settlement/internal/services"
	"github.com/Renal37/dress-settlement/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu      sync.Mutex
	payouts []models.Payout
}

func (s *recordingSink) Send(_ context.Context, payout models.Payout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payouts = append(s.payouts, payout)
	return nil
}

func TestSettlementScenario(t *testing.T) {
	calculator, err := fees.New("15")
	require.NoError(t, err)

	store := database.NewMemory()
	sandbox := gateway.NewSandbox()
	queue := services.NewJobQueueService(context.Background(), 10, 1)
	sink := &recordingSink{}

	testServer := httptest.NewServer(New(
		Config{},
		services.NewSettlementService(store, sandbox, calculator),
		services.NewLifecycleService(store, services.NewPayoutService(queue, sink), calculator),
	).get())
	defer testServer.Close()

	request := func(method, path, body string) (int, string) {
		res, mes := utils.TestRequest(t, testServer, method, path,
			map[string]string{"Content-Type": "application/json"},
			strings.NewReader(body),
		)
		res.Body.Close()
		return res.StatusCode, mes
	}

	code, mes := request("POST", "/api/payments/authorizations", `{"amount":100000,"productRef":"dress-1","sellerRef":"s1"}`)
	require.Equal(t, http.StatusOK, code, mes)

	var authorization models.AuthorizationResult
	require.NoError(t, json.Unmarshal([]byte(mes), &authorization))
	assert.Equal(t, int64(15000), authorization.PlatformFee)
	assert.Equal(t, int64(85000), authorization.SellerAmount)

	confirmBody := `{"authorizationId":"` + authorization.AuthorizationID + `"}`

	code, _ = request("POST", "/api/payments/confirm", confirmBody)
	assert.Equal(t, http.StatusBadRequest, code)

	require.NoError(t, sandbox.Capture(authorization.AuthorizationID))

	code, mes = request("POST", "/api/payments/confirm", confirmBody)
	require.Equal(t, http.StatusCreated, code, mes)

	var settlement models.SettlementResult
	require.NoError(t, json.Unmarshal([]byte(mes), &settlement))
	assert.Equal(t, models.StatusPaid, settlement.Status)
	assert.Equal(t, int64(100000), settlement.Amount)
	assert.Equal(t, map[string]string{
		models.MetadataProductRef:  "dress-1",
		models.MetadataSellerRef:   "s1",
		models.MetadataPlatformFee: "15000",
	}, settlement.Metadata)

	code, mes = request("POST", "/api/payments/confirm", confirmBody)
	require.Equal(t, http.StatusOK, code, mes)

	var duplicate models.SettlementResult
	require.NoError(t, json.Unmarshal([]byte(mes), &duplicate))
	assert.True(t, duplicate.Duplicate)
	assert.Equal(t, settlement.OrderID, duplicate.OrderID)

	steps := []struct {
		status       models.OrderStatus
		tracking     string
		expectedCode int
	}{
		{models.StatusShipped, "TRK-1", http.StatusOK},
		{models.StatusCompleted, "", http.StatusBadRequest},
		{models.StatusDelivered, "", http.StatusOK},
		{models.StatusCompleted, "", http.StatusOK},
		{models.StatusCompleted, "", http.StatusBadRequest},
		{models.StatusCancelled, "", http.StatusBadRequest},
	}

	for _, step := range steps {
		body, _ := json.Marshal(models.StatusUpdate{OrderID: settlement.OrderID, Status: step.status, TrackingNumber: step.tracking})
		code, mes := request("PATCH", "/api/orders/status", string(body))
		assert.Equal(t, step.expectedCode, code, "%s: %s", step.status, mes)
	}

	code, _ = request("PATCH", "/api/orders/status", `{"orderId":"unknown","status":"shipped"}`)
	assert.Equal(t, http.StatusNotFound, code)

	code, mes = request("GET", "/api/orders/"+settlement.OrderID, "")
	require.Equal(t, http.StatusOK, code, mes)

	var order models.Order
	require.NoError(t, json.Unmarshal([]byte(mes), &order))
	assert.Equal(t, models.StatusCompleted, order.Status)
	assert.Equal(t, "TRK-1", order.TrackingNumber)
	assert.False(t, order.UpdatedAt.Before(order.CreatedAt))

	queue.Shutdown()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Equal(t, []models.Payout{{
		OrderID:      settlement.OrderID,
		SellerRef:    "s1",
		Amount:       100000,
		PlatformFee:  15000,
		SellerAmount: 85000,
	}}, sink.payouts)
}

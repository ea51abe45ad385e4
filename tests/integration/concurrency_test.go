package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"fund-order-platform/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentPaymentCallbacks fires the same provider settlement callback
// many times in parallel. The markTerminal path treats an already-terminal
// payment as a no-op, so every request must succeed and the payment must end
// in exactly one terminal state.
func TestConcurrentPaymentCallbacks(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	paymentID, providerRef := createActivePayment(t, app)

	concurrency := 25
	body := fmt.Sprintf(`{"payment_ref":"%s","status":"SUCCESS"}`, providerRef)

	var wg sync.WaitGroup
	var okCount atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			resp, err := http.Post(app.server.URL+"/webhooks/payments", "application/json",
				bytes.NewBufferString(body))
			if err != nil {
				return
			}
			defer resp.Body.Close()
			_, _ = io.ReadAll(resp.Body)
			if resp.StatusCode == http.StatusOK {
				okCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(concurrency), okCount.Load(), "duplicate callbacks must all be accepted")

	stored, err := app.payments.GetByID(context.Background(), uuid.MustParse(paymentID))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, domain.PaymentStatusCompleted, stored.Status)

	orders, err := app.orders.ListByPaymentID(context.Background(), stored.ID)
	require.NoError(t, err)
	require.NotEmpty(t, orders)
	for _, order := range orders {
		assert.Equal(t, domain.OrderStatusCompleted, order.Status)
	}
}

// TestConcurrentBankVerifications redelivers one bank-verification event in
// parallel. The processed-event cache plus the durable VERIFIED check make the
// webhook idempotent: all deliveries are acknowledged and the record settles
// into a single verified state.
func TestConcurrentBankVerifications(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	concurrency := 20
	payload := `{"referenceId":"REF-001","transactionId":"TRX-001","trxStatus":"SUCCESS","amount":100,"utr":"UTR-9"}`

	var wg sync.WaitGroup
	var okCount atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			resp, err := http.Post(app.server.URL+"/webhooks/bank-verification", "application/json",
				bytes.NewBufferString(payload))
			if err != nil {
				return
			}
			defer resp.Body.Close()
			_, _ = io.ReadAll(resp.Body)
			if resp.StatusCode == http.StatusOK {
				okCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(concurrency), okCount.Load(), "redeliveries must all be acknowledged")

	stored, err := app.verifications.GetByReference(context.Background(), "REF-001")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, domain.BankVerifyVerified, stored.Status)
	require.NotNil(t, stored.UTR)
	assert.Equal(t, "UTR-9", *stored.UTR)
}

// TestConcurrentPaymentCreates drives distinct payment creations in parallel
// through the full HTTP stack, under the shared per-investor rate limit.
func TestConcurrentPaymentCreates(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	// The payments group allows 30 requests per minute per investor; stay
	// inside that so every request is expected to succeed.
	concurrency := 20

	var wg sync.WaitGroup
	var created atomic.Int64
	paymentIDs := make([]string, concurrency)

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			body := fmt.Sprintf(`{"child_id":%d,"method":"UPI","orders":[{"goal_id":1,"kind":"BUY","amount":%d}]}`,
				testChildID, 10000+idx)
			req, err := http.NewRequest(http.MethodPost, app.server.URL+"/api/v1/payments",
				bytes.NewBufferString(body))
			if err != nil {
				return
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+app.authToken)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusCreated {
				return
			}
			created.Add(1)

			var envelope struct {
				Data struct {
					ID string `json:"id"`
				} `json:"data"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
				paymentIDs[idx] = envelope.Data.ID
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(concurrency), created.Load(), "all distinct creations should succeed")

	unique := make(map[string]struct{}, concurrency)
	for _, id := range paymentIDs {
		if id == "" {
			continue
		}
		unique[id] = struct{}{}

		stored, err := app.payments.GetByID(context.Background(), uuid.MustParse(id))
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, domain.PaymentStatusPending, stored.Status)
	}
	assert.Len(t, unique, concurrency, "every request must create its own payment")
}

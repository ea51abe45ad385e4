package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"fund-order-platform/internal/core/ports"
	"fund-order-platform/pkg/apperror"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// Config carries provider connection settings.
type Config struct {
	BaseURL     string
	APIKey      string
	CallTimeout time.Duration
}

// Client implements ports.ProviderGateway over the provider's HTTP API. Every
// call goes through a circuit breaker so a degraded provider sheds load fast
// instead of holding worker goroutines on timeouts.
type Client struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker[*resty.Response]
	log     zerolog.Logger
}

// NewClient creates a provider client with a shared circuit breaker.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.CallTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Api-Key", cfg.APIKey)

	breaker := gobreaker.NewCircuitBreaker[*resty.Response](gobreaker.Settings{
		Name:        "fund-provider",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("provider circuit breaker state changed")
		},
	})

	return &Client{http: httpClient, breaker: breaker, log: log}
}

// do executes one provider call through the breaker and decodes the response
// into result. Provider error bodies are logged, never returned to callers.
func (c *Client) do(ctx context.Context, method, path string, body any, result any) error {
	resp, err := c.breaker.Execute(func() (*resty.Response, error) {
		req := c.http.R().SetContext(ctx)
		if body != nil {
			req.SetBody(body)
		}
		if result != nil {
			req.SetResult(result)
		}
		resp, err := req.Execute(method, path)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return resp, fmt.Errorf("provider returned %d", resp.StatusCode())
		}
		return resp, nil
	})
	if err != nil {
		if resp != nil {
			c.log.Error().
				Str("path", path).
				Int("status", resp.StatusCode()).
				Str("body", string(resp.Body())).
				Msg("provider call rejected")
		} else {
			c.log.Error().Err(err).Str("path", path).Msg("provider call failed")
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return apperror.ErrProviderTimeout(err)
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return apperror.ErrProviderFailure(fmt.Errorf("provider circuit open: %w", err))
		}
		return apperror.ErrProviderFailure(err)
	}
	return nil
}

type otpSendRequest struct {
	InvestorRef string   `json:"investor_ref"`
	FundIDs     []string `json:"fund_ids"`
}

type otpSendResponse struct {
	OtpRef string `json:"otp_ref"`
}

// SendOtp asks the provider to issue a transaction OTP scoped to the funds.
func (c *Client) SendOtp(ctx context.Context, scope ports.OtpScope) (string, error) {
	var out otpSendResponse
	err := c.do(ctx, http.MethodPost, "/v2/otp", otpSendRequest{
		InvestorRef: scope.InvestorRef,
		FundIDs:     scope.FundIDs,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.OtpRef, nil
}

type otpVerifyRequest struct {
	Code string `json:"code"`
}

type otpVerifyResponse struct {
	Verified bool `json:"verified"`
}

// VerifyOtp checks the investor-entered code against the provider OTP.
func (c *Client) VerifyOtp(ctx context.Context, otpRef string, code string) (bool, error) {
	var out otpVerifyResponse
	err := c.do(ctx, http.MethodPost, "/v2/otp/"+otpRef+"/verify", otpVerifyRequest{Code: code}, &out)
	if err != nil {
		return false, err
	}
	return out.Verified, nil
}

type mandateRequest struct {
	InvestorRef string `json:"investor_ref"`
	BankRef     string `json:"bank_ref"`
	MandateType string `json:"mandate_type"`
	AuthLimit   int64  `json:"auth_limit"`
}

type mandateResponse struct {
	MandateRef  string `json:"mandate_ref"`
	RedirectURL string `json:"redirect_url"`
}

// CreateMandate registers a standing auto-debit authorization.
func (c *Client) CreateMandate(ctx context.Context, req ports.MandateRequest) (*ports.MandateResult, error) {
	var out mandateResponse
	err := c.do(ctx, http.MethodPost, "/v2/mandates", mandateRequest{
		InvestorRef: req.InvestorRef,
		BankRef:     req.BankRef,
		MandateType: req.MandateType,
		AuthLimit:   req.AuthLimit,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &ports.MandateResult{MandateRef: out.MandateRef, RedirectURL: out.RedirectURL}, nil
}

// AuthorizeMandate fetches a fresh confirmation URL for an existing mandate.
func (c *Client) AuthorizeMandate(ctx context.Context, mandateRef string) (*ports.MandateResult, error) {
	var out mandateResponse
	err := c.do(ctx, http.MethodPost, "/v2/mandates/"+mandateRef+"/authorize", nil, &out)
	if err != nil {
		return nil, err
	}
	return &ports.MandateResult{MandateRef: out.MandateRef, RedirectURL: out.RedirectURL}, nil
}

type paymentInitRequest struct {
	BankRef     string   `json:"bank_ref"`
	Method      string   `json:"method"`
	OrderRefs   []string `json:"order_refs"`
	Amount      int64    `json:"amount"`
	CallbackURL string   `json:"callback_url"`
}

type paymentInitResponse struct {
	PaymentRef  string `json:"payment_ref"`
	RedirectURL string `json:"redirect_url"`
}

// CreatePayment starts the bank transfer leg for submitted orders.
func (c *Client) CreatePayment(ctx context.Context, req ports.PaymentInitRequest) (*ports.PaymentInitResult, error) {
	var out paymentInitResponse
	err := c.do(ctx, http.MethodPost, "/v2/payments", paymentInitRequest{
		BankRef:     req.BankRef,
		Method:      req.Method,
		OrderRefs:   req.OrderRefs,
		Amount:      req.Amount,
		CallbackURL: req.CallbackURL,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &ports.PaymentInitResult{PaymentRef: out.PaymentRef, RedirectURL: out.RedirectURL}, nil
}

type bulkOrderLine struct {
	FundID      string `json:"fund_id"`
	FolioNumber string `json:"folio_number,omitempty"`
	Amount      int64  `json:"amount"`
}

type bulkOrderRequest struct {
	InvestorRef string          `json:"investor_ref"`
	AuthRef     string          `json:"auth_ref"`
	InvestorIP  string          `json:"investor_ip"`
	Orders      []bulkOrderLine `json:"orders"`
}

type bulkOrderResponse struct {
	BulkOrderRef string `json:"bulk_order_ref"`
	Items        []struct {
		FundID   string `json:"fund_id"`
		OrderRef string `json:"order_ref"`
	} `json:"items"`
}

// PlaceBulkOrder submits every buy line of a verified payment in one call.
func (c *Client) PlaceBulkOrder(ctx context.Context, req ports.BulkOrderRequest) (*ports.BulkOrderResult, error) {
	lines := make([]bulkOrderLine, 0, len(req.Orders))
	for _, o := range req.Orders {
		lines = append(lines, bulkOrderLine{FundID: o.FundID, FolioNumber: o.FolioNumber, Amount: o.Amount})
	}
	var out bulkOrderResponse
	err := c.do(ctx, http.MethodPost, "/v2/orders/bulk", bulkOrderRequest{
		InvestorRef: req.InvestorRef,
		AuthRef:     req.AuthRef,
		InvestorIP:  req.InvestorIP,
		Orders:      lines,
	}, &out)
	if err != nil {
		return nil, err
	}
	result := &ports.BulkOrderResult{
		BulkOrderRef: out.BulkOrderRef,
		ItemRefs:     make(map[string]string, len(out.Items)),
	}
	for _, item := range out.Items {
		result.ItemRefs[item.FundID] = item.OrderRef
	}
	return result, nil
}

type sipPlanLine struct {
	FundID          string `json:"fund_id"`
	FolioNumber     string `json:"folio_number,omitempty"`
	RecurringAmount int64  `json:"recurring_amount"`
	StartDate       string `json:"start_date"`
	MandateRef      string `json:"mandate_ref"`
}

type sipOrderResponse struct {
	Items []struct {
		FundID     string `json:"fund_id"`
		OrderRef   string `json:"order_ref"`
		PaymentRef string `json:"payment_ref"`
	} `json:"items"`
}

// PlaceSipOrder registers the recurring plans under an authorized mandate.
func (c *Client) PlaceSipOrder(ctx context.Context, plans []ports.SipPlanDetail) ([]ports.SipOrderItemResult, error) {
	lines := make([]sipPlanLine, 0, len(plans))
	for _, p := range plans {
		lines = append(lines, sipPlanLine{
			FundID:          p.FundID,
			FolioNumber:     p.FolioNumber,
			RecurringAmount: p.RecurringAmount,
			StartDate:       p.StartDate.Format("2006-01-02"),
			MandateRef:      p.MandateRef,
		})
	}
	var out sipOrderResponse
	if err := c.do(ctx, http.MethodPost, "/v2/orders/sip", map[string]any{"plans": lines}, &out); err != nil {
		return nil, err
	}
	results := make([]ports.SipOrderItemResult, 0, len(out.Items))
	for _, item := range out.Items {
		results = append(results, ports.SipOrderItemResult{
			FundID:     item.FundID,
			OrderRef:   item.OrderRef,
			PaymentRef: item.PaymentRef,
		})
	}
	return results, nil
}

type sellOrderLine struct {
	FundID      string `json:"fund_id"`
	FolioNumber string `json:"folio_number"`
	Units       int64  `json:"units"`
}

type sellOrderResponse struct {
	Items []struct {
		FundID   string `json:"fund_id"`
		OrderRef string `json:"order_ref"`
	} `json:"items"`
}

// PlaceSellOrder submits the redemption lines for an investor.
func (c *Client) PlaceSellOrder(ctx context.Context, investorRef string, details []ports.SellOrderDetail) (*ports.SellOrderResult, error) {
	lines := make([]sellOrderLine, 0, len(details))
	for _, d := range details {
		lines = append(lines, sellOrderLine{FundID: d.FundID, FolioNumber: d.FolioNumber, Units: d.Units})
	}
	var out sellOrderResponse
	err := c.do(ctx, http.MethodPost, "/v2/orders/sell", map[string]any{
		"investor_ref": investorRef,
		"orders":       lines,
	}, &out)
	if err != nil {
		return nil, err
	}
	result := &ports.SellOrderResult{ItemRefs: make(map[string]string, len(out.Items))}
	for _, item := range out.Items {
		result.ItemRefs[item.FundID] = item.OrderRef
	}
	return result, nil
}

// ConfirmOrder acknowledges submitted orders with the provider.
func (c *Client) ConfirmOrder(ctx context.Context, orderRefs []string) error {
	return c.do(ctx, http.MethodPost, "/v2/orders/confirm", map[string]any{"order_refs": orderRefs}, nil)
}

// UpdateConsent records the investor consent decision for an order.
func (c *Client) UpdateConsent(ctx context.Context, orderRef string, contact string, state string) error {
	return c.do(ctx, http.MethodPost, "/v2/orders/"+orderRef+"/consent", map[string]any{
		"contact": contact,
		"state":   state,
	}, nil)
}

type orderStatusResponse struct {
	Status    string `json:"status"`
	NAV       int64  `json:"nav"`
	Units     int64  `json:"units"`
	Amount    int64  `json:"amount"`
	SettledAt string `json:"settled_at"`
}

// FetchStatus polls the current state of a submitted order. Unknown provider
// states map to PENDING so transient provider vocabulary never fails an order.
func (c *Client) FetchStatus(ctx context.Context, orderRef string) (*ports.OrderStatusResult, error) {
	var out orderStatusResponse
	if err := c.do(ctx, http.MethodGet, "/v2/orders/"+orderRef+"/status", nil, &out); err != nil {
		return nil, err
	}
	result := &ports.OrderStatusResult{
		NAV:    out.NAV,
		Units:  out.Units,
		Amount: out.Amount,
	}
	switch out.Status {
	case "ALLOTTED", "SETTLED", "SUCCESS":
		result.Status = ports.ProviderStatusAllotted
	case "REJECTED", "FAILED", "CANCELLED":
		result.Status = ports.ProviderStatusRejected
	default:
		result.Status = ports.ProviderStatusPending
	}
	if out.SettledAt != "" {
		if ts, err := time.Parse(time.RFC3339, out.SettledAt); err == nil {
			result.SettledAt = ts
		}
	}
	return result, nil
}

type navResponse struct {
	FundID string `json:"fund_id"`
	NAV    int64  `json:"nav"`
}

// CurrentNav fetches the latest NAV for a fund in micro-rupees per unit.
func (c *Client) CurrentNav(ctx context.Context, fundID string) (int64, error) {
	var out navResponse
	if err := c.do(ctx, http.MethodGet, "/v2/funds/"+fundID+"/nav", nil, &out); err != nil {
		return 0, err
	}
	if out.NAV <= 0 {
		return 0, apperror.ErrProviderFailure(fmt.Errorf("provider returned non-positive nav for %s", fundID))
	}
	return out.NAV, nil
}

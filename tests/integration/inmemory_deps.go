package integration

import (
	"context"
	"fmt"
	"sync"

	"fund-order-platform/internal/core/domain"
	"fund-order-platform/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// In-memory ports implementations backing the integration stack. All methods
// copy on read and on write so concurrent tests never share domain pointers
// with the repositories.

// --- In-Memory Payment Repo ---

type inMemoryPaymentRepo struct {
	mu       sync.RWMutex
	payments map[uuid.UUID]*domain.Payment
}

func newInMemoryPaymentRepo() *inMemoryPaymentRepo {
	return &inMemoryPaymentRepo{payments: make(map[uuid.UUID]*domain.Payment)}
}

func (r *inMemoryPaymentRepo) Create(ctx context.Context, tx pgx.Tx, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *payment
	r.payments[payment.ID] = &cp
	return nil
}

func (r *inMemoryPaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *inMemoryPaymentRepo) GetByProviderPaymentRef(ctx context.Context, ref string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.payments {
		if p.ProviderPaymentRef != nil && *p.ProviderPaymentRef == ref {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryPaymentRepo) Update(ctx context.Context, tx pgx.Tx, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[payment.ID]; !ok {
		return fmt.Errorf("payment not found")
	}
	payment.Version++
	cp := *payment
	r.payments[payment.ID] = &cp
	return nil
}

// --- In-Memory Order Repo ---

type inMemoryOrderRepo struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*domain.Order
}

func newInMemoryOrderRepo() *inMemoryOrderRepo {
	return &inMemoryOrderRepo{orders: make(map[uuid.UUID]*domain.Order)}
}

func (r *inMemoryOrderRepo) Create(ctx context.Context, tx pgx.Tx, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *inMemoryOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *inMemoryOrderRepo) ListByPaymentID(ctx context.Context, paymentID uuid.UUID) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Order
	for _, o := range r.orders {
		if o.PaymentID != nil && *o.PaymentID == paymentID {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (r *inMemoryOrderRepo) Update(ctx context.Context, tx pgx.Tx, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return fmt.Errorf("order not found")
	}
	order.Version++
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

// --- In-Memory Order Item Repo ---

type inMemoryOrderItemRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*domain.OrderItem
}

func newInMemoryOrderItemRepo() *inMemoryOrderItemRepo {
	return &inMemoryOrderItemRepo{items: make(map[uuid.UUID]*domain.OrderItem)}
}

func (r *inMemoryOrderItemRepo) CreateBatch(ctx context.Context, tx pgx.Tx, items []domain.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range items {
		cp := items[i]
		r.items[cp.ID] = &cp
	}
	return nil
}

func (r *inMemoryOrderItemRepo) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.OrderItem
	for _, item := range r.items {
		if item.OrderID == orderID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (r *inMemoryOrderItemRepo) GetByProviderRef(ctx context.Context, providerRef string) (*domain.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.items {
		if item.ProviderOrderRef != nil && *item.ProviderOrderRef == providerRef {
			cp := *item
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryOrderItemRepo) SetProviderRefs(ctx context.Context, tx pgx.Tx, itemID uuid.UUID, orderRef, paymentRef string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok {
		return false, fmt.Errorf("order item not found")
	}
	if item.ProviderOrderRef != nil {
		return false, nil
	}
	item.ProviderOrderRef = &orderRef
	if paymentRef != "" {
		item.ProviderPaymentRef = &paymentRef
	}
	return true, nil
}

func (r *inMemoryOrderItemRepo) UpdateState(ctx context.Context, tx pgx.Tx, itemID uuid.UUID, state domain.OrderItemState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok {
		return fmt.Errorf("order item not found")
	}
	item.State = state
	return nil
}

// --- In-Memory MFA Session Repo ---

type inMemoryMfaSessionRepo struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.MfaSession
	attempts []domain.MfaAttempt
}

func newInMemoryMfaSessionRepo() *inMemoryMfaSessionRepo {
	return &inMemoryMfaSessionRepo{sessions: make(map[uuid.UUID]*domain.MfaSession)}
}

func (r *inMemoryMfaSessionRepo) Create(ctx context.Context, session *domain.MfaSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *session
	r.sessions[session.ID] = &cp
	return nil
}

func (r *inMemoryMfaSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.MfaSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *inMemoryMfaSessionRepo) Update(ctx context.Context, session *domain.MfaSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[session.ID]; !ok {
		return fmt.Errorf("mfa session not found")
	}
	cp := *session
	r.sessions[session.ID] = &cp
	return nil
}

func (r *inMemoryMfaSessionRepo) AppendAttempt(ctx context.Context, attempt *domain.MfaAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, *attempt)
	return nil
}

// --- In-Memory Settlement Repo ---

type inMemorySettlementRepo struct {
	mu      sync.RWMutex
	records []domain.SettlementRecord
}

func newInMemorySettlementRepo() *inMemorySettlementRepo {
	return &inMemorySettlementRepo{}
}

func (r *inMemorySettlementRepo) Create(ctx context.Context, tx pgx.Tx, record *domain.SettlementRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *record)
	return nil
}

func (r *inMemorySettlementRepo) ExistsByProviderRef(ctx context.Context, providerRef string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.records {
		if rec.ProviderOrderRef == providerRef {
			return true, nil
		}
	}
	return false, nil
}

func (r *inMemorySettlementRepo) SumUnits(ctx context.Context, userID, goalID int64, fundID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total int64
	for _, rec := range r.records {
		if rec.UserID == userID && rec.GoalID == goalID && rec.FundID == fundID {
			total += rec.Units
		}
	}
	return total, nil
}

// --- In-Memory Folio Repo ---

type inMemoryFolioRepo struct {
	mu     sync.RWMutex
	folios []domain.Folio
}

func newInMemoryFolioRepo(folios ...domain.Folio) *inMemoryFolioRepo {
	return &inMemoryFolioRepo{folios: folios}
}

func (r *inMemoryFolioRepo) ListByFund(ctx context.Context, fundID string) ([]domain.Folio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Folio
	for _, f := range r.folios {
		if f.FundID == fundID {
			result = append(result, f)
		}
	}
	return result, nil
}

// --- In-Memory Goal Repo ---

type inMemoryGoalRepo struct {
	mu    sync.RWMutex
	goals map[int64]*domain.Goal
}

func newInMemoryGoalRepo(goals ...domain.Goal) *inMemoryGoalRepo {
	r := &inMemoryGoalRepo{goals: make(map[int64]*domain.Goal)}
	for i := range goals {
		cp := goals[i]
		r.goals[cp.ID] = &cp
	}
	return r
}

func (r *inMemoryGoalRepo) GetByID(ctx context.Context, id int64) (*domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.goals[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (r *inMemoryGoalRepo) ListEligibleByChild(ctx context.Context, userID, childID int64) ([]domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Goal
	for _, g := range r.goals {
		if g.UserID == userID && g.ChildID == childID && g.Status == domain.GoalStatusDraft {
			result = append(result, *g)
		}
	}
	return result, nil
}

func (r *inMemoryGoalRepo) AddToSIPTotal(ctx context.Context, tx pgx.Tx, goalID int64, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.goals[goalID]
	if !ok {
		return fmt.Errorf("goal not found")
	}
	g.SIPTotal += delta
	return nil
}

// --- In-Memory Beneficiary / Contact Repos ---

type inMemoryBeneficiaryRepo struct {
	mu            sync.RWMutex
	beneficiaries map[int64]*domain.Beneficiary
}

func newInMemoryBeneficiaryRepo(beneficiaries ...domain.Beneficiary) *inMemoryBeneficiaryRepo {
	r := &inMemoryBeneficiaryRepo{beneficiaries: make(map[int64]*domain.Beneficiary)}
	for i := range beneficiaries {
		cp := beneficiaries[i]
		r.beneficiaries[cp.ID] = &cp
	}
	return r
}

func (r *inMemoryBeneficiaryRepo) GetByID(ctx context.Context, id int64) (*domain.Beneficiary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.beneficiaries[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

type inMemoryContactRepo struct {
	mu           sync.RWMutex
	destinations map[int64]map[domain.MfaChannel]string
}

func newInMemoryContactRepo() *inMemoryContactRepo {
	return &inMemoryContactRepo{destinations: make(map[int64]map[domain.MfaChannel]string)}
}

func (r *inMemoryContactRepo) setDestination(userID int64, channel domain.MfaChannel, destination string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destinations[userID] == nil {
		r.destinations[userID] = make(map[domain.MfaChannel]string)
	}
	r.destinations[userID][channel] = destination
}

func (r *inMemoryContactRepo) GetDestination(ctx context.Context, userID int64, channel domain.MfaChannel) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.destinations[userID][channel], nil
}

// --- In-Memory Bank Verification Repo ---

type inMemoryBankVerificationRepo struct {
	mu            sync.RWMutex
	verifications map[string]*domain.BankVerification
}

func newInMemoryBankVerificationRepo(verifications ...domain.BankVerification) *inMemoryBankVerificationRepo {
	r := &inMemoryBankVerificationRepo{verifications: make(map[string]*domain.BankVerification)}
	for i := range verifications {
		cp := verifications[i]
		r.verifications[cp.ReferenceID] = &cp
	}
	return r
}

func (r *inMemoryBankVerificationRepo) GetByReference(ctx context.Context, referenceID string) (*domain.BankVerification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.verifications[referenceID]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *inMemoryBankVerificationRepo) Update(ctx context.Context, verification *domain.BankVerification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.verifications[verification.ReferenceID]; !ok {
		return fmt.Errorf("bank verification not found")
	}
	cp := *verification
	r.verifications[verification.ReferenceID] = &cp
	return nil
}

// --- Recording Scheduler ---

type recordingScheduler struct {
	mu   sync.Mutex
	jobs []domain.ReconciliationJob
}

func newRecordingScheduler() *recordingScheduler {
	return &recordingScheduler{}
}

func (s *recordingScheduler) Register(ctx context.Context, job domain.ReconciliationJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, job)
	return nil
}

func (s *recordingScheduler) RegisterBatch(ctx context.Context, jobs []domain.ReconciliationJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, jobs...)
}

func (s *recordingScheduler) Cancel(ctx context.Context, jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.jobs {
		if s.jobs[i].ID == jobID {
			s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *recordingScheduler) registered() []domain.ReconciliationJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ReconciliationJob(nil), s.jobs...)
}

// --- Recording OTP Sender ---

type recordingOtpSender struct {
	mu       sync.Mutex
	lastCode string
	lastDest string
}

func newRecordingOtpSender() *recordingOtpSender {
	return &recordingOtpSender{}
}

func (s *recordingOtpSender) Send(ctx context.Context, channel domain.MfaChannel, destination, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastCode = code
	s.lastDest = destination
	return nil
}

func (s *recordingOtpSender) sentCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCode
}

// --- Stub Provider Gateway ---

// stubProvider answers every gateway call with deterministic references. The
// OTP leg accepts exactly acceptCode so tests can drive both outcomes.
type stubProvider struct {
	mu         sync.Mutex
	acceptCode string
	payments   int
}

func newStubProvider() *stubProvider {
	return &stubProvider{acceptCode: "123456"}
}

func (p *stubProvider) SendOtp(ctx context.Context, scope ports.OtpScope) (string, error) {
	return "OTP-REF-" + scope.InvestorRef, nil
}

func (p *stubProvider) VerifyOtp(ctx context.Context, otpRef, code string) (bool, error) {
	return code == p.acceptCode, nil
}

func (p *stubProvider) CreateMandate(ctx context.Context, req ports.MandateRequest) (*ports.MandateResult, error) {
	return &ports.MandateResult{
		MandateRef:  "MND-1",
		RedirectURL: "https://provider.test/mandates/MND-1",
	}, nil
}

func (p *stubProvider) AuthorizeMandate(ctx context.Context, mandateRef string) (*ports.MandateResult, error) {
	return &ports.MandateResult{
		MandateRef:  mandateRef,
		RedirectURL: "https://provider.test/mandates/" + mandateRef + "/authorize",
	}, nil
}

func (p *stubProvider) CreatePayment(ctx context.Context, req ports.PaymentInitRequest) (*ports.PaymentInitResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payments++
	ref := fmt.Sprintf("PAY-%d", p.payments)
	return &ports.PaymentInitResult{
		PaymentRef:  ref,
		RedirectURL: "https://provider.test/pay/" + ref,
	}, nil
}

func (p *stubProvider) PlaceBulkOrder(ctx context.Context, req ports.BulkOrderRequest) (*ports.BulkOrderResult, error) {
	refs := make(map[string]string, len(req.Orders))
	for _, o := range req.Orders {
		refs[o.FundID] = "ORD-" + o.FundID
	}
	return &ports.BulkOrderResult{BulkOrderRef: "BULK-1", ItemRefs: refs}, nil
}

func (p *stubProvider) PlaceSipOrder(ctx context.Context, plans []ports.SipPlanDetail) ([]ports.SipOrderItemResult, error) {
	results := make([]ports.SipOrderItemResult, 0, len(plans))
	for _, plan := range plans {
		results = append(results, ports.SipOrderItemResult{
			FundID:     plan.FundID,
			OrderRef:   "SIP-" + plan.FundID,
			PaymentRef: "SIPPAY-" + plan.FundID,
		})
	}
	return results, nil
}

func (p *stubProvider) PlaceSellOrder(ctx context.Context, investorRef string, details []ports.SellOrderDetail) (*ports.SellOrderResult, error) {
	refs := make(map[string]string, len(details))
	for _, d := range details {
		refs[d.FundID] = "SELL-" + d.FundID
	}
	return &ports.SellOrderResult{ItemRefs: refs}, nil
}

func (p *stubProvider) ConfirmOrder(ctx context.Context, orderRefs []string) error { return nil }

func (p *stubProvider) UpdateConsent(ctx context.Context, orderRef, contact, state string) error {
	return nil
}

func (p *stubProvider) FetchStatus(ctx context.Context, orderRef string) (*ports.OrderStatusResult, error) {
	return &ports.OrderStatusResult{Status: ports.ProviderStatusPending}, nil
}

// --- Static NAV Source ---

type staticNavSource struct {
	nav int64
}

func (s staticNavSource) CurrentNav(ctx context.Context, fundID string) (int64, error) {
	return s.nav, nil
}

// --- Stub Health Checker ---

type stubHealthChecker struct {
	name string
}

func (c stubHealthChecker) Ping(ctx context.Context) error { return nil }
func (c stubHealthChecker) Name() string                   { return c.name }

// --- In-Memory Transactor (no-op tx) ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }

package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"climatec_os/internal/domain/entities"
	"climatec_os/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/juju/clock"
)

var (
	ErrBudgetPaymentNotFound          = errors.New("budget payment not found")
	ErrInvalidPaymentPayload          = errors.New("invalid payment payload")
	ErrBudgetNotApproved              = errors.New("budget not approved")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// IBudgetPaymentUseCase charges approved budgets through the payment gateway.
//
// The amount always comes from the stored budget total, never from the caller.
type IBudgetPaymentUseCase interface {
	Pay(ctx context.Context, budgetID string, payload json.RawMessage) (entities.BudgetPayment, error)
	ListByBudgetID(ctx context.Context, budgetID string) ([]entities.BudgetPayment, error)
}

type BudgetPaymentUseCase struct {
	repo       interfaces.IBudgetPaymentRepository
	budgetRepo interfaces.IBudgetRepository
	gateway    interfaces.IPaymentGateway
	clock      clock.Clock
	// relaxed accepts payloads without payment method and payer, for the mock gateway.
	relaxed bool
}

var _ IBudgetPaymentUseCase = (*BudgetPaymentUseCase)(nil)

func NewBudgetPaymentUseCase(repo interfaces.IBudgetPaymentRepository, budgetRepo interfaces.IBudgetRepository, gateway interfaces.IPaymentGateway, clk clock.Clock, relaxed bool) *BudgetPaymentUseCase {
	return &BudgetPaymentUseCase{repo: repo, budgetRepo: budgetRepo, gateway: gateway, clock: orWallClock(clk), relaxed: relaxed}
}

func (u *BudgetPaymentUseCase) Pay(ctx context.Context, budgetID string, payload json.RawMessage) (entities.BudgetPayment, error) {
	log.Printf("[payment][usecase] pay start raw_budget_id=%q payload_len=%d", budgetID, len(payload))
	budgetID = strings.TrimSpace(budgetID)
	if budgetID == "" {
		return entities.BudgetPayment{}, ErrInvalidBudgetID
	}
	if len(payload) == 0 && u.relaxed {
		payload = json.RawMessage("{}")
	}

	var req map[string]any
	if err := json.Unmarshal(payload, &req); err != nil || req == nil {
		log.Printf("[payment][usecase] invalid payload (not-object) budget_id=%s", budgetID)
		return entities.BudgetPayment{}, ErrInvalidPaymentPayload
	}
	if u.gateway == nil {
		log.Printf("[payment][usecase] gateway not configured budget_id=%s", budgetID)
		return entities.BudgetPayment{}, ErrPaymentGatewayNotConfigured
	}

	budget, err := u.budgetRepo.GetByID(ctx, budgetID)
	if err != nil {
		log.Printf("[payment][usecase] failed loading budget budget_id=%s err=%v", budgetID, err)
		return entities.BudgetPayment{}, err
	}
	if budget.ID == "" {
		return entities.BudgetPayment{}, ErrBudgetNotFound
	}
	if budget.Status != entities.BudgetStatusApproved {
		log.Printf("[payment][usecase] budget not approved budget_id=%s status=%s", budgetID, budget.Status)
		return entities.BudgetPayment{}, ErrBudgetNotApproved
	}

	if !u.relaxed {
		if !hasNonEmptyString(req, "payment_method_id") {
			log.Printf("[payment][usecase] missing payment_method_id budget_id=%s", budgetID)
			return entities.BudgetPayment{}, ErrInvalidPaymentPayload
		}
		ensurePayerDefaults(req)
		if !hasPayer(req) {
			log.Printf("[payment][usecase] missing/invalid payer budget_id=%s", budgetID)
			return entities.BudgetPayment{}, ErrInvalidPaymentPayload
		}
	}

	// external_reference lets provider notifications be reconciled with the budget.
	if _, ok := req["external_reference"]; !ok {
		req["external_reference"] = budgetID
	}
	if _, ok := req["description"]; !ok {
		req["description"] = fmt.Sprintf("Orçamento %s", budgetID)
	}
	req["transaction_amount"] = budget.Total.InexactFloat64()

	enriched, err := json.Marshal(req)
	if err != nil {
		return entities.BudgetPayment{}, err
	}

	providerID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, enriched)
	if err != nil {
		log.Printf("[payment][usecase] payment gateway failed budget_id=%s err=%v", budgetID, err)
		return entities.BudgetPayment{}, mapGatewayError(err)
	}
	log.Printf("[payment][usecase] payment gateway success budget_id=%s provider_payment_id=%s provider_status=%s", budgetID, providerID, providerStatus)

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Printf("[payment][usecase] provider response unmarshal failed budget_id=%s err=%v", budgetID, err)
	}
	if strings.TrimSpace(providerID) == "" {
		providerID = uuid.NewString()
	}

	p := entities.BudgetPayment{
		ID:                 providerID,
		BudgetID:           budgetID,
		Amount:             budget.Total,
		Date:               u.clock.Now().UTC(),
		Status:             paymentStatusFromProvider(providerStatus),
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[payment][usecase] payment repository create failed budget_id=%s payment_id=%s err=%v", budgetID, p.ID, err)
		return entities.BudgetPayment{}, err
	}
	log.Printf("[payment][usecase] pay success budget_id=%s payment_id=%s status=%s", budgetID, created.ID, created.Status)
	return created, nil
}

// ListByBudgetID returns the payments of a budget, oldest first.
func (u *BudgetPaymentUseCase) ListByBudgetID(ctx context.Context, budgetID string) ([]entities.BudgetPayment, error) {
	budgetID = strings.TrimSpace(budgetID)
	if budgetID == "" {
		return nil, ErrInvalidBudgetID
	}
	payments, err := u.repo.ListByBudgetID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].Date.Before(payments[j].Date)
	})
	return payments, nil
}

func paymentStatusFromProvider(status string) entities.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved", "authorized":
		return entities.PaymentStatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.PaymentStatusRejected
	default:
		return entities.PaymentStatusPending
	}
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v)) != ""
}

func ensurePayerDefaults(m map[string]any) {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
}

// mapGatewayError turns provider error bodies into sentinel errors. The SDK
// only exposes them as text.
func mapGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return ErrPaymentGatewayBadRequest
	}
	return err
}

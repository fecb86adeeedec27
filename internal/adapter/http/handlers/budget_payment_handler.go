package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	request "climatec_os/internal/adapter/http/dto/request"
	response "climatec_os/internal/adapter/http/dto/response"
	"climatec_os/internal/usecase"
	"climatec_os/pkg"

	"github.com/gin-gonic/gin"
)

// BudgetPaymentHandler charges approved budgets through the payment gateway.
type BudgetPaymentHandler struct {
	usecase usecase.IBudgetPaymentUseCase
	// mockGateway accepts unreadable bodies as an empty payload.
	mockGateway bool
}

func NewBudgetPaymentHandler(uc usecase.IBudgetPaymentUseCase, mockGateway bool) *BudgetPaymentHandler {
	return &BudgetPaymentHandler{usecase: uc, mockGateway: mockGateway}
}

// Pay godoc
// @Summary      Pay an approved budget
// @Description  The body is the Mercado Pago payment payload, optionally wrapped in {"mp_payload": ...}.
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "budget id"
// @Success      200  {object}  response.BudgetPaymentResponse
// @Failure      409  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /budgets/{id}/payments [post]
func (h *BudgetPaymentHandler) Pay(c *gin.Context) {
	budgetID := c.Param("id")
	log.Printf("[payment][handler] create start budget_id=%s", budgetID)

	payload, err := readPaymentPayload(c)
	if err != nil {
		if !h.mockGateway {
			log.Printf("[payment][handler] invalid payload budget_id=%s err=%v", budgetID, err)
			respondError(c, errInvalidRequest)
			return
		}
		log.Printf("[payment][handler] payload invalid in mock mode; fallback to empty payload budget_id=%s err=%v", budgetID, err)
		payload = json.RawMessage("{}")
	}

	created, err := h.usecase.Pay(c.Request.Context(), budgetID, payload)
	if err != nil {
		log.Printf("[payment][handler] create failed budget_id=%s err=%v", budgetID, err)
		respondError(c, mapBudgetPaymentError(err))
		return
	}
	log.Printf("[payment][handler] create success budget_id=%s payment_id=%s status=%s", budgetID, created.ID, created.Status)

	c.JSON(http.StatusOK, response.FromBudgetPayment(created))
}

// List returns every payment of the budget, oldest first.
func (h *BudgetPaymentHandler) List(c *gin.Context) {
	payments, err := h.usecase.ListByBudgetID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapBudgetPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBudgetPayments(payments))
}

func readPaymentPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	return request.ParsePaymentPayload(raw)
}

func mapBudgetPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidBudgetID), errors.Is(err, usecase.ErrInvalidPaymentPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_NOT_CONFIGURED", "Payment provider not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrBudgetNotFound):
		return pkg.NewDomainErrorSimple("BUDGET_NOT_FOUND", "Budget not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrBudgetNotApproved):
		return pkg.NewDomainErrorSimple("BUDGET_NOT_APPROVED", "Budget not approved", http.StatusConflict)
	case errors.Is(err, usecase.ErrBudgetPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return internalError(err)
	}
}

package handlers

import (
	"errors"
	"net/http"

	request "climatec_os/internal/adapter/http/dto/request"
	response "climatec_os/internal/adapter/http/dto/response"
	"climatec_os/internal/domain/workflow"
	"climatec_os/internal/usecase"
	"climatec_os/pkg"

	"github.com/gin-gonic/gin"
)

// BudgetHandler handles HTTP requests for budgets (orçamentos).
type BudgetHandler struct {
	usecase usecase.IBudgetUseCase
}

func NewBudgetHandler(uc usecase.IBudgetUseCase) *BudgetHandler {
	return &BudgetHandler{usecase: uc}
}

// List godoc
// @Summary      List budgets with their service description and client name
// @Tags         budgets
// @Produce      json
// @Param        status  query     string  false  "pending, approved or rejected"
// @Success      200     {array}   response.BudgetResponse
// @Security     Bearer
// @Router       /budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
	items, err := h.usecase.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBudgetListItems(items))
}

// Create godoc
// @Summary      Snapshot a service order into a pending budget
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        body  body      request.BudgetCreateRequest  true  "service order"
// @Success      201   {object}  response.BudgetResponse
// @Failure      409   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /budgets [post]
func (h *BudgetHandler) Create(c *gin.Context) {
	var payload request.BudgetCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return
	}

	b, err := h.usecase.Create(c.Request.Context(), payload.ServiceOrderID)
	if err != nil {
		respondError(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromBudget(b))
}

func (h *BudgetHandler) GetByID(c *gin.Context) {
	b, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBudget(b))
}

func (h *BudgetHandler) Approve(c *gin.Context) {
	b, err := h.usecase.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBudget(b))
}

func (h *BudgetHandler) Reject(c *gin.Context) {
	b, err := h.usecase.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBudget(b))
}

func mapBudgetError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidBudgetID), errors.Is(err, usecase.ErrInvalidServiceOrderID),
		errors.Is(err, workflow.ErrInvalidBudgetStatus), errors.Is(err, workflow.ErrInvalidBudgetAction):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrBudgetNotFound):
		return pkg.NewDomainErrorSimple("BUDGET_NOT_FOUND", "Budget not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrServiceOrderNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_ORDER_NOT_FOUND", "Service order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrBudgetAlreadyExists):
		return pkg.NewDomainErrorSimple("BUDGET_ALREADY_EXISTS", "A pending budget already exists for this service order", http.StatusConflict)
	case errors.Is(err, workflow.ErrBudgetAlreadyResolved):
		return pkg.NewDomainErrorSimple("BUDGET_ALREADY_RESOLVED", "Budget already approved or rejected", http.StatusConflict)
	default:
		return internalError(err)
	}
}

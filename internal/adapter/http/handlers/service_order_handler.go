package handlers

import (
	"errors"
	"net/http"
	"strconv"

	request "climatec_os/internal/adapter/http/dto/request"
	response "climatec_os/internal/adapter/http/dto/response"
	"climatec_os/internal/domain/entities"
	"climatec_os/internal/domain/pricing"
	"climatec_os/internal/domain/workflow"
	"climatec_os/internal/usecase"
	"climatec_os/pkg"

	"github.com/gin-gonic/gin"
)

// ServiceOrderHandler handles service orders and their material lines.
type ServiceOrderHandler struct {
	usecase usecase.IServiceOrderUseCase
}

func NewServiceOrderHandler(uc usecase.IServiceOrderUseCase) *ServiceOrderHandler {
	return &ServiceOrderHandler{usecase: uc}
}

// List godoc
// @Summary      List service orders, newest first
// @Tags         service-orders
// @Produce      json
// @Param        status     query     string  false  "pending, in_progress, completed, cancelled or all"
// @Param        client_id  query     string  false  "only orders of this client"
// @Param        q          query     string  false  "matches description or client name"
// @Success      200        {array}   response.ServiceOrderResponse
// @Security     Bearer
// @Router       /service-orders [get]
func (h *ServiceOrderHandler) List(c *gin.Context) {
	items, err := h.usecase.List(c.Request.Context(), usecase.ServiceOrderFilter{
		Status:   c.Query("status"),
		ClientID: c.Query("client_id"),
		Query:    c.Query("q"),
	})
	if err != nil {
		respondError(c, mapServiceOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromServiceOrderListItems(items))
}

// Create godoc
// @Summary      Open a service order
// @Tags         service-orders
// @Accept       json
// @Produce      json
// @Param        body  body      request.ServiceOrderRequest  true  "service order"
// @Success      201   {object}  response.ServiceOrderResponse
// @Failure      400   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /service-orders [post]
func (h *ServiceOrderHandler) Create(c *gin.Context) {
	var payload request.ServiceOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return
	}

	o, err := h.usecase.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		respondError(c, mapServiceOrderError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromServiceOrder(o))
}

func (h *ServiceOrderHandler) GetByID(c *gin.Context) {
	o, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapServiceOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromServiceOrder(o))
}

func (h *ServiceOrderHandler) Update(c *gin.Context) {
	var payload request.ServiceOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return
	}

	o, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		respondError(c, mapServiceOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromServiceOrder(o))
}

func (h *ServiceOrderHandler) UpdateStatus(c *gin.Context) {
	var payload request.OrderStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return
	}

	o, err := h.usecase.UpdateStatus(c.Request.Context(), c.Param("id"), entities.OrderStatus(payload.Status))
	if err != nil {
		respondError(c, mapServiceOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromServiceOrder(o))
}

func (h *ServiceOrderHandler) Delete(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, mapServiceOrderError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ServiceOrderHandler) AddMaterial(c *gin.Context) {
	var payload request.AddMaterialRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return
	}

	o, err := h.usecase.AddMaterial(c.Request.Context(), c.Param("id"), payload.MaterialID)
	if err != nil {
		respondError(c, mapServiceOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromServiceOrder(o))
}

// SetMaterialQuantity changes the quantity of the line at :index. The quantity
// is coerced, so "3un" or 2.5 are accepted.
func (h *ServiceOrderHandler) SetMaterialQuantity(c *gin.Context) {
	index, ok := lineIndex(c)
	if !ok {
		respondError(c, errInvalidRequest)
		return
	}
	var payload request.MaterialQuantityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return
	}

	o, err := h.usecase.SetMaterialQuantity(c.Request.Context(), c.Param("id"), index, payload.Quantity.Int())
	if err != nil {
		respondError(c, mapServiceOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromServiceOrder(o))
}

func (h *ServiceOrderHandler) RemoveMaterial(c *gin.Context) {
	index, ok := lineIndex(c)
	if !ok {
		respondError(c, errInvalidRequest)
		return
	}

	o, err := h.usecase.RemoveMaterial(c.Request.Context(), c.Param("id"), index)
	if err != nil {
		respondError(c, mapServiceOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromServiceOrder(o))
}

func lineIndex(c *gin.Context) (int, bool) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0, false
	}
	return i, true
}

func mapServiceOrderError(err error) *pkg.AppError {
	if appErr, ok := validationError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidServiceOrderID), errors.Is(err, usecase.ErrInvalidMaterialID):
		return errInvalidRequest
	case errors.Is(err, workflow.ErrInvalidOrderStatus):
		return pkg.NewDomainErrorSimple("INVALID_STATUS", "Invalid service order status", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrServiceOrderNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_ORDER_NOT_FOUND", "Service order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrMaterialNotFound):
		return pkg.NewDomainErrorSimple("MATERIAL_NOT_FOUND", "Material not found", http.StatusNotFound)
	case errors.Is(err, pricing.ErrLineIndexOutOfRange):
		return pkg.NewDomainErrorSimple("MATERIAL_LINE_NOT_FOUND", "Material line not found", http.StatusNotFound)
	case errors.Is(err, pricing.ErrQuantityTooLarge):
		return pkg.NewDomainErrorSimple("QUANTITY_TOO_LARGE", "Material quantity exceeds the per-line limit", http.StatusBadRequest)
	case errors.Is(err, pricing.ErrDuplicateMaterial):
		return pkg.NewDomainErrorSimple("MATERIAL_ALREADY_ADDED", "Material already added to this order", http.StatusConflict)
	case errors.Is(err, workflow.ErrOrderTransitionDenied):
		return pkg.NewDomainErrorSimple("STATUS_TRANSITION_DENIED", "Status transition not allowed", http.StatusConflict)
	default:
		return internalError(err)
	}
}

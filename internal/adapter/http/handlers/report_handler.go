package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	response "climatec_os/internal/adapter/http/dto/response"
	"climatec_os/internal/usecase"
	"climatec_os/pkg"

	"github.com/gin-gonic/gin"
)

// defaultClientReportLimit matches the "top clients" card of the reports screen.
const defaultClientReportLimit = 5

type ReportHandler struct {
	usecase usecase.IReportUseCase
}

func NewReportHandler(uc usecase.IReportUseCase) *ReportHandler {
	return &ReportHandler{usecase: uc}
}

// Monthly godoc
// @Summary      Monthly service-order summary
// @Tags         reports
// @Produce      json
// @Param        month  query     string  false  "YYYY-MM, current month when omitted"
// @Success      200    {object}  response.MonthlyReportResponse
// @Failure      400    {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /reports/monthly [get]
func (h *ReportHandler) Monthly(c *gin.Context) {
	stats, err := h.usecase.Monthly(c.Request.Context(), c.Query("month"))
	if err != nil {
		respondError(c, mapReportError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromMonthlyStats(stats))
}

func (h *ReportHandler) ServiceTypes(c *gin.Context) {
	shares, err := h.usecase.ServiceTypes(c.Request.Context())
	if err != nil {
		respondError(c, mapReportError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromServiceTypeShares(shares))
}

// Clients lists clients with their order count. limit=0 returns every client.
func (h *ReportHandler) Clients(c *gin.Context) {
	limit := defaultClientReportLimit
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(c, errInvalidRequest)
			return
		}
		limit = n
	}

	counts, err := h.usecase.Clients(c.Request.Context(), limit)
	if err != nil {
		respondError(c, mapReportError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromClientOrderCounts(counts))
}

func (h *ReportHandler) Dashboard(c *gin.Context) {
	stats, err := h.usecase.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, mapReportError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromDashboardStats(stats))
}

func mapReportError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidMonth):
		return pkg.NewDomainErrorSimple("INVALID_MONTH", "Invalid month, expected YYYY-MM", http.StatusBadRequest)
	default:
		return internalError(err)
	}
}

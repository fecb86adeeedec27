package routes

import (
	"climatec_os/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathClients       = "/clients"
	PathMaterials     = "/materials"
	PathServiceOrders = "/service-orders"
	PathBudgets       = "/budgets"
	PathReports       = "/reports"
	PathDashboard     = "/dashboard"
)

func addClientRoutes(rg *gin.RouterGroup, h *handlers.ClientHandler) {
	clients := rg.Group(PathClients)
	{
		clients.GET("", h.List)
		clients.POST("", h.Create)
		clients.GET("/:id", h.GetByID)
		clients.PUT("/:id", h.Update)
		clients.DELETE("/:id", h.Delete)
	}
}

func addMaterialRoutes(rg *gin.RouterGroup, h *handlers.MaterialHandler) {
	materials := rg.Group(PathMaterials)
	{
		materials.GET("", h.List)
		materials.POST("", h.Create)
		materials.GET("/:id", h.GetByID)
	}
}

func addServiceOrderRoutes(rg *gin.RouterGroup, h *handlers.ServiceOrderHandler, photos *handlers.PhotoHandler) {
	orders := rg.Group(PathServiceOrders)
	{
		orders.GET("", h.List)
		orders.POST("", h.Create)
		orders.GET("/:id", h.GetByID)
		orders.PUT("/:id", h.Update)
		orders.PATCH("/:id/status", h.UpdateStatus)
		orders.DELETE("/:id", h.Delete)

		// Material lines are addressed by their position in the order.
		orders.POST("/:id/materials", h.AddMaterial)
		orders.PATCH("/:id/materials/:index", h.SetMaterialQuantity)
		orders.DELETE("/:id/materials/:index", h.RemoveMaterial)

		orders.POST("/:id/photos", photos.Upload)
		orders.DELETE("/:id/photos", photos.Delete)
	}
}

func addBudgetRoutes(rg *gin.RouterGroup, h *handlers.BudgetHandler, payments *handlers.BudgetPaymentHandler) {
	budgets := rg.Group(PathBudgets)
	{
		budgets.GET("", h.List)
		budgets.POST("", h.Create)
		budgets.GET("/:id", h.GetByID)
		budgets.PATCH("/:id/approve", h.Approve)
		budgets.PATCH("/:id/reject", h.Reject)

		budgets.POST("/:id/payments", payments.Pay)
		budgets.GET("/:id/payments", payments.List)
	}
}

func addReportRoutes(rg *gin.RouterGroup, h *handlers.ReportHandler) {
	reports := rg.Group(PathReports)
	{
		reports.GET("/monthly", h.Monthly)
		reports.GET("/service-types", h.ServiceTypes)
		reports.GET("/clients", h.Clients)
	}
	rg.GET(PathDashboard, h.Dashboard)
}

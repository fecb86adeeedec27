package routes

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	_ "climatec_os/docs"
	"climatec_os/internal/adapter/http/handlers"
	"climatec_os/internal/infrastructure/config"
	"climatec_os/internal/session"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

// Handlers groups everything mounted under /v1. RequireAuth guards every route
// except ping, sign-up and sign-in.
type Handlers struct {
	Sessions       SessionStatus
	RequireAuth    gin.HandlerFunc
	Auth           *handlers.AuthHandler
	Clients        *handlers.ClientHandler
	Materials      *handlers.MaterialHandler
	ServiceOrders  *handlers.ServiceOrderHandler
	Photos         *handlers.PhotoHandler
	Budgets        *handlers.BudgetHandler
	BudgetPayments *handlers.BudgetPaymentHandler
	Reports        *handlers.ReportHandler
}

// Run will start the server and block until ctx is cancelled or the listener
// fails.
func Run(ctx context.Context, cfg config.Config) error {
	app, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}

	unsubscribe := app.sessions.Subscribe(session.LogListener)
	defer unsubscribe()
	app.sessions.Start(ctx)
	defer app.sessions.Stop()

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           NewRouter(app.handlers),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		log.Printf("[http][server] listening addr=%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("[http][server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func NewRouter(h Handlers) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1, h.Sessions)
	addAuthRoutes(v1, h.Auth, h.RequireAuth)

	private := v1.Group("", h.RequireAuth)
	addClientRoutes(private, h.Clients)
	addMaterialRoutes(private, h.Materials)
	addServiceOrderRoutes(private, h.ServiceOrders, h.Photos)
	addBudgetRoutes(private, h.Budgets, h.BudgetPayments)
	addReportRoutes(private, h.Reports)

	return router
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("[http][recovery] recovered from panic path=%s err=%v", c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"code":    "INTERNAL_ERROR",
			"message": "Internal server error",
		})
	}))
}

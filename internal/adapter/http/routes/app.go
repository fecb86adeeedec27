package routes

import (
	"context"
	"fmt"
	"log"

	"climatec_os/internal/adapter/http/handlers"
	"climatec_os/internal/adapter/persistence/repository"
	"climatec_os/internal/domain/workflow"
	"climatec_os/internal/infrastructure/auth"
	"climatec_os/internal/infrastructure/config"
	"climatec_os/internal/infrastructure/database"
	"climatec_os/internal/infrastructure/payments"
	"climatec_os/internal/infrastructure/storage"
	"climatec_os/internal/session"
	"climatec_os/internal/usecase"
	"climatec_os/internal/usecase/interfaces"

	"github.com/juju/clock"
	"golang.org/x/crypto/bcrypt"
)

type app struct {
	handlers Handlers
	sessions *session.Watcher
}

// newApp builds the repositories, gateways and use cases behind the handlers.
func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	loc, err := cfg.Reports.Location()
	if err != nil {
		return nil, fmt.Errorf("report timezone %q: %w", cfg.Reports.Timezone, err)
	}

	awsCfg, err := database.NewAWSConfig(ctx, cfg.AWS)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}
	ddb := database.NewDynamoDBClient(awsCfg, cfg.AWS)
	blobs := storage.NewS3BlobStore(storage.NewS3Client(awsCfg, cfg.AWS), cfg.AWS.Region, cfg.Storage)

	clientRepo := repository.NewClientDynamoRepository(ddb, cfg.Tables.Clients)
	materialRepo := repository.NewMaterialDynamoRepository(ddb, cfg.Tables.Materials)
	orderRepo := repository.NewServiceOrderDynamoRepository(ddb, cfg.Tables.ServiceOrders)
	budgetRepo := repository.NewBudgetDynamoRepository(ddb, cfg.Tables.Budgets)
	paymentRepo := repository.NewBudgetPaymentDynamoRepository(ddb, cfg.Tables.Payments)
	userRepo := repository.NewUserDynamoRepository(ddb, cfg.Tables.Users)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.Payments, clock.WallClock)
	if err != nil {
		log.Printf("[payment][startup] Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	sessions := session.NewWatcher(clock.WallClock, 0)
	authUseCase := usecase.NewAuthUseCase(
		userRepo,
		auth.NewBcryptHasher(bcrypt.DefaultCost),
		auth.NewJWTIssuer(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL, clock.WallClock),
		sessions,
		clock.WallClock,
	)

	policy := workflow.OrderPolicy{Strict: cfg.Workflow.StrictOrderStatus}
	if policy.Strict {
		log.Printf("[service_order][startup] strict status workflow enabled")
	}

	return &app{
		sessions: sessions,
		handlers: Handlers{
			Sessions:       sessions,
			RequireAuth:    handlers.RequireAuth(authUseCase),
			Auth:           handlers.NewAuthHandler(authUseCase),
			Clients:        handlers.NewClientHandler(usecase.NewClientUseCase(clientRepo, clock.WallClock)),
			Materials:      handlers.NewMaterialHandler(usecase.NewMaterialUseCase(materialRepo, clock.WallClock)),
			ServiceOrders:  handlers.NewServiceOrderHandler(usecase.NewServiceOrderUseCase(orderRepo, clientRepo, materialRepo, policy, clock.WallClock)),
			Photos:         handlers.NewPhotoHandler(usecase.NewPhotoUseCase(orderRepo, blobs, clock.WallClock, cfg.Storage.UploadConcurrency, cfg.Storage.MaxPhotoBytes), cfg.Storage.MaxPhotoBytes, cfg.Storage.MaxRequestBytes),
			Budgets:        handlers.NewBudgetHandler(usecase.NewBudgetUseCase(budgetRepo, orderRepo, clientRepo, clock.WallClock)),
			BudgetPayments: handlers.NewBudgetPaymentHandler(usecase.NewBudgetPaymentUseCase(paymentRepo, budgetRepo, paymentGateway, clock.WallClock, cfg.Payments.Mock), cfg.Payments.Mock),
			Reports:        handlers.NewReportHandler(usecase.NewReportUseCase(clientRepo, orderRepo, loc, clock.WallClock)),
		},
	}, nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"climatec_os/internal/domain/entities"
	"climatec_os/internal/domain/pricing"
	"climatec_os/internal/domain/search"
	"climatec_os/internal/domain/workflow"
	"climatec_os/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/juju/clock"
	"golang.org/x/sync/errgroup"
)

var (
	ErrBudgetNotFound      = errors.New("budget not found")
	ErrBudgetAlreadyExists = errors.New("a pending budget already exists for this service order")
	ErrInvalidBudgetID     = errors.New("invalid budget id")
)

// BudgetListItem carries the lookups shown next to a budget in listings.
type BudgetListItem struct {
	Budget             entities.Budget
	ServiceDescription string
	ClientName         string
	Actions            []workflow.BudgetAction
}

// IBudgetUseCase exposes budget (orçamento) operations:
//   - Create snapshots a service order into a new pending budget
//   - Approve/Reject resolve a pending budget, once
type IBudgetUseCase interface {
	Create(ctx context.Context, serviceOrderID string) (entities.Budget, error)
	GetByID(ctx context.Context, id string) (entities.Budget, error)
	List(ctx context.Context, status string) ([]BudgetListItem, error)
	Approve(ctx context.Context, id string) (entities.Budget, error)
	Reject(ctx context.Context, id string) (entities.Budget, error)
}

type BudgetUseCase struct {
	repo       interfaces.IBudgetRepository
	orderRepo  interfaces.IServiceOrderRepository
	clientRepo interfaces.IClientRepository
	clock      clock.Clock
}

var _ IBudgetUseCase = (*BudgetUseCase)(nil)

func NewBudgetUseCase(repo interfaces.IBudgetRepository, orderRepo interfaces.IServiceOrderRepository, clientRepo interfaces.IClientRepository, clk clock.Clock) *BudgetUseCase {
	return &BudgetUseCase{repo: repo, orderRepo: orderRepo, clientRepo: clientRepo, clock: orWallClock(clk)}
}

// Create copies the order's lines, labor and total as they are now. Later edits
// to the order are not reflected in the budget.
func (u *BudgetUseCase) Create(ctx context.Context, serviceOrderID string) (entities.Budget, error) {
	serviceOrderID = strings.TrimSpace(serviceOrderID)
	if serviceOrderID == "" {
		return entities.Budget{}, ErrInvalidServiceOrderID
	}

	order, err := u.orderRepo.GetByID(ctx, serviceOrderID)
	if err != nil {
		return entities.Budget{}, err
	}
	if order.ID == "" {
		return entities.Budget{}, ErrServiceOrderNotFound
	}

	existing, err := u.repo.ListByServiceOrderID(ctx, serviceOrderID)
	if err != nil {
		return entities.Budget{}, err
	}
	for _, b := range existing {
		if b.Status == entities.BudgetStatusPending {
			return entities.Budget{}, ErrBudgetAlreadyExists
		}
	}

	lines := pricing.Normalize(order.Materials)
	now := u.clock.Now().UTC()
	b := entities.Budget{
		ID:             uuid.NewString(),
		ServiceOrderID: order.ID,
		Materials:      lines,
		LaborCost:      order.LaborCost,
		Total:          pricing.OrderTotal(lines, order.LaborCost),
		Status:         entities.BudgetStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := u.repo.Create(ctx, b)
	if err != nil {
		log.Printf("[budget][usecase] create failed service_order_id=%s err=%v", serviceOrderID, err)
		return entities.Budget{}, err
	}
	log.Printf("[budget][usecase] created id=%s service_order_id=%s total=%s", created.ID, serviceOrderID, created.Total.StringFixed(2))
	return created, nil
}

func (u *BudgetUseCase) GetByID(ctx context.Context, id string) (entities.Budget, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Budget{}, ErrInvalidBudgetID
	}

	b, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Budget{}, err
	}
	if b.ID == "" {
		return entities.Budget{}, ErrBudgetNotFound
	}
	return b, nil
}

// List returns budgets newest first, optionally only those in status.
func (u *BudgetUseCase) List(ctx context.Context, status string) ([]BudgetListItem, error) {
	status = strings.TrimSpace(status)
	if status != "" && status != search.StatusAll && !entities.BudgetStatus(status).IsValid() {
		return nil, fmt.Errorf("%w: %q", workflow.ErrInvalidBudgetStatus, status)
	}

	var budgets []entities.Budget
	var orders []entities.ServiceOrder
	var clients []entities.Client
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		budgets, err = u.repo.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		orders, err = u.orderRepo.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		clients, err = u.clientRepo.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Printf("[budget][usecase] list failed err=%v", err)
		return nil, err
	}

	ordersByID := make(map[string]entities.ServiceOrder, len(orders))
	for _, o := range orders {
		ordersByID[o.ID] = o
	}
	clientsByID := search.IndexClients(clients)

	out := make([]BudgetListItem, 0, len(budgets))
	for _, b := range budgets {
		if status != "" && status != search.StatusAll && string(b.Status) != status {
			continue
		}
		order := ordersByID[b.ServiceOrderID]
		out = append(out, BudgetListItem{
			Budget:             b,
			ServiceDescription: order.Description,
			ClientName:         clientsByID[order.ClientID].Name,
			Actions:            workflow.BudgetActions(b.Status),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Budget.CreatedAt.After(out[j].Budget.CreatedAt)
	})
	return out, nil
}

func (u *BudgetUseCase) Approve(ctx context.Context, id string) (entities.Budget, error) {
	return u.resolve(ctx, id, workflow.BudgetActionApprove)
}

func (u *BudgetUseCase) Reject(ctx context.Context, id string) (entities.Budget, error) {
	return u.resolve(ctx, id, workflow.BudgetActionReject)
}

// resolve never touches the source service order.
func (u *BudgetUseCase) resolve(ctx context.Context, id string, action workflow.BudgetAction) (entities.Budget, error) {
	current, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Budget{}, err
	}

	next, err := workflow.ResolveBudget(current.Status, action)
	if err != nil {
		return entities.Budget{}, err
	}

	updated, err := u.repo.UpdateStatus(ctx, current.ID, entities.BudgetStatusPending, next, u.clock.Now().UTC())
	if err != nil {
		log.Printf("[budget][usecase] %s failed id=%s err=%v", action, current.ID, err)
		return entities.Budget{}, err
	}
	if updated.ID == "" {
		// Resolved by a concurrent request between the read and the update.
		return entities.Budget{}, workflow.ErrBudgetAlreadyResolved
	}
	log.Printf("[budget][usecase] %s id=%s status=%s", action, updated.ID, updated.Status)
	return updated, nil
}

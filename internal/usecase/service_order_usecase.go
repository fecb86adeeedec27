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
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var (
	ErrServiceOrderNotFound  = errors.New("service order not found")
	ErrInvalidServiceOrderID = errors.New("invalid service order id")
)

// MaterialLineInput selects a catalog material for an order. Lines already on
// the order keep their unit price snapshot; new ones take the current price.
type MaterialLineInput struct {
	MaterialID string
	Quantity   int
}

type ServiceOrderInput struct {
	ClientID    string
	ServiceType entities.ServiceType
	Description string
	// Status is optional on create (pending) and on update (unchanged).
	Status    entities.OrderStatus
	LaborCost decimal.Decimal
	Notes     string
	// Materials nil keeps the current lines on update.
	Materials []MaterialLineInput
}

type ServiceOrderFilter struct {
	Status   string
	ClientID string
	Query    string
}

type ServiceOrderListItem struct {
	Order      entities.ServiceOrder
	ClientName string
}

type IServiceOrderUseCase interface {
	Create(ctx context.Context, in ServiceOrderInput) (entities.ServiceOrder, error)
	Update(ctx context.Context, id string, in ServiceOrderInput) (entities.ServiceOrder, error)
	UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.ServiceOrder, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (entities.ServiceOrder, error)
	List(ctx context.Context, filter ServiceOrderFilter) ([]ServiceOrderListItem, error)
	AddMaterial(ctx context.Context, id, materialID string) (entities.ServiceOrder, error)
	SetMaterialQuantity(ctx context.Context, id string, index, quantity int) (entities.ServiceOrder, error)
	RemoveMaterial(ctx context.Context, id string, index int) (entities.ServiceOrder, error)
}

type ServiceOrderUseCase struct {
	repo         interfaces.IServiceOrderRepository
	clientRepo   interfaces.IClientRepository
	materialRepo interfaces.IMaterialRepository
	policy       workflow.OrderPolicy
	clock        clock.Clock
}

var _ IServiceOrderUseCase = (*ServiceOrderUseCase)(nil)

func NewServiceOrderUseCase(
	repo interfaces.IServiceOrderRepository,
	clientRepo interfaces.IClientRepository,
	materialRepo interfaces.IMaterialRepository,
	policy workflow.OrderPolicy,
	clk clock.Clock,
) *ServiceOrderUseCase {
	return &ServiceOrderUseCase{
		repo:         repo,
		clientRepo:   clientRepo,
		materialRepo: materialRepo,
		policy:       policy,
		clock:        orWallClock(clk),
	}
}

func (u *ServiceOrderUseCase) Create(ctx context.Context, in ServiceOrderInput) (entities.ServiceOrder, error) {
	in = normalizeOrderInput(in)
	if in.Status == "" {
		in.Status = entities.OrderStatusPending
	}
	if err := u.validate(ctx, in); err != nil {
		return entities.ServiceOrder{}, err
	}

	lines, err := u.resolveLines(ctx, nil, in.Materials)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	now := u.clock.Now().UTC()
	o := entities.ServiceOrder{
		ID:          uuid.NewString(),
		ClientID:    in.ClientID,
		ServiceType: in.ServiceType,
		Description: in.Description,
		Status:      in.Status,
		Materials:   lines,
		LaborCost:   in.LaborCost,
		Photos:      []entities.Photo{},
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	priceOrder(&o)

	created, err := u.repo.Create(ctx, o)
	if err != nil {
		log.Printf("[service_order][usecase] create failed client_id=%s err=%v", o.ClientID, err)
		return entities.ServiceOrder{}, err
	}
	log.Printf("[service_order][usecase] created id=%s client_id=%s total=%s", created.ID, created.ClientID, created.Total.StringFixed(2))
	return created, nil
}

// Update replaces the editable fields of the order. Photos are managed by the
// photo use case and are kept as stored.
func (u *ServiceOrderUseCase) Update(ctx context.Context, id string, in ServiceOrderInput) (entities.ServiceOrder, error) {
	current, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	in = normalizeOrderInput(in)
	if in.Status == "" {
		in.Status = current.Status
	}
	if err := u.validate(ctx, in); err != nil {
		return entities.ServiceOrder{}, err
	}
	if err := u.policy.CanTransition(current.Status, in.Status); err != nil {
		return entities.ServiceOrder{}, err
	}

	lines := current.Materials
	if in.Materials != nil {
		if lines, err = u.resolveLines(ctx, current.Materials, in.Materials); err != nil {
			return entities.ServiceOrder{}, err
		}
	}

	current.ClientID = in.ClientID
	current.ServiceType = in.ServiceType
	current.Description = in.Description
	current.Status = in.Status
	current.LaborCost = in.LaborCost
	current.Notes = in.Notes
	current.Materials = lines
	return u.save(ctx, current)
}

func (u *ServiceOrderUseCase) UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.ServiceOrder, error) {
	current, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if err := u.policy.CanTransition(current.Status, status); err != nil {
		return entities.ServiceOrder{}, err
	}
	if current.Status == status {
		return current, nil
	}

	log.Printf("[service_order][usecase] status change id=%s from=%s to=%s", current.ID, current.Status, status)
	current.Status = status
	return u.save(ctx, current)
}

// Delete removes the order document only. Photos stay in the blob store and
// budgets keep their snapshot.
func (u *ServiceOrderUseCase) Delete(ctx context.Context, id string) error {
	current, err := u.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, current.ID); err != nil {
		log.Printf("[service_order][usecase] delete failed id=%s err=%v", current.ID, err)
		return err
	}
	return nil
}

func (u *ServiceOrderUseCase) GetByID(ctx context.Context, id string) (entities.ServiceOrder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ServiceOrder{}, ErrInvalidServiceOrderID
	}

	o, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if o.ID == "" {
		return entities.ServiceOrder{}, ErrServiceOrderNotFound
	}
	return o, nil
}

// List loads orders and clients concurrently, applies the filter in memory and
// returns the newest orders first.
func (u *ServiceOrderUseCase) List(ctx context.Context, filter ServiceOrderFilter) ([]ServiceOrderListItem, error) {
	status := strings.TrimSpace(filter.Status)
	if status != "" && status != search.StatusAll && !entities.OrderStatus(status).IsValid() {
		return nil, fmt.Errorf("%w: %q", workflow.ErrInvalidOrderStatus, status)
	}
	clientID := strings.TrimSpace(filter.ClientID)

	var orders []entities.ServiceOrder
	var clients []entities.Client
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		switch {
		case clientID != "":
			orders, err = u.repo.ListByClientID(gctx, clientID)
		case status != "" && status != search.StatusAll:
			orders, err = u.repo.ListByStatus(gctx, entities.OrderStatus(status))
		default:
			orders, err = u.repo.List(gctx)
		}
		return err
	})
	g.Go(func() error {
		var err error
		clients, err = u.clientRepo.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Printf("[service_order][usecase] list failed err=%v", err)
		return nil, err
	}

	byID := search.IndexClients(clients)
	matched := search.ServiceOrders(orders, byID, status, filter.Query)
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	out := make([]ServiceOrderListItem, 0, len(matched))
	for _, o := range matched {
		out = append(out, ServiceOrderListItem{Order: o, ClientName: byID[o.ClientID].Name})
	}
	return out, nil
}

// AddMaterial appends the catalog material with quantity 1.
func (u *ServiceOrderUseCase) AddMaterial(ctx context.Context, id, materialID string) (entities.ServiceOrder, error) {
	current, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	m, err := u.material(ctx, materialID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	lines, err := pricing.AddLine(current.Materials, m)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	current.Materials = lines
	return u.save(ctx, current)
}

func (u *ServiceOrderUseCase) SetMaterialQuantity(ctx context.Context, id string, index, quantity int) (entities.ServiceOrder, error) {
	current, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	lines, err := pricing.SetQuantity(current.Materials, index, quantity)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	current.Materials = lines
	return u.save(ctx, current)
}

func (u *ServiceOrderUseCase) RemoveMaterial(ctx context.Context, id string, index int) (entities.ServiceOrder, error) {
	current, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	lines, err := pricing.RemoveLine(current.Materials, index)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	current.Materials = lines
	return u.save(ctx, current)
}

func (u *ServiceOrderUseCase) save(ctx context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error) {
	o.UpdatedAt = u.clock.Now().UTC()
	priceOrder(&o)

	updated, err := u.repo.Update(ctx, o)
	if err != nil {
		log.Printf("[service_order][usecase] update failed id=%s err=%v", o.ID, err)
		return entities.ServiceOrder{}, err
	}
	if updated.ID == "" {
		return entities.ServiceOrder{}, ErrServiceOrderNotFound
	}
	return updated, nil
}

func (u *ServiceOrderUseCase) validate(ctx context.Context, in ServiceOrderInput) error {
	v := Violations{}
	v.required("client_id", in.ClientID)
	v.required("description", in.Description)
	if !in.ServiceType.IsValid() {
		v["service_type"] = "invalid"
	}
	if !in.Status.IsValid() {
		v["status"] = "invalid"
	}
	if in.LaborCost.IsNegative() {
		v["labor_cost"] = "must_not_be_negative"
	}
	seen := map[string]bool{}
	for i, m := range in.Materials {
		switch {
		case m.MaterialID == "":
			v[fmt.Sprintf("materials[%d].material_id", i)] = "required"
		case seen[m.MaterialID]:
			v[fmt.Sprintf("materials[%d].material_id", i)] = "duplicate"
		}
		if pricing.CheckQuantity(m.Quantity) != nil {
			v[fmt.Sprintf("materials[%d].quantity", i)] = "too_large"
		}
		seen[m.MaterialID] = true
	}
	if !v.Empty() {
		return v.Err()
	}

	c, err := u.clientRepo.GetByID(ctx, in.ClientID)
	if err != nil {
		return err
	}
	if c.ID == "" {
		v["client_id"] = "not_found"
	}
	return v.Err()
}

// resolveLines builds the line list for inputs. Materials already present in
// current keep their snapshot; others are copied from the catalog.
func (u *ServiceOrderUseCase) resolveLines(ctx context.Context, current []entities.MaterialLine, inputs []MaterialLineInput) ([]entities.MaterialLine, error) {
	existing := make(map[string]entities.MaterialLine, len(current))
	for _, l := range current {
		existing[l.MaterialID] = l
	}

	lines := make([]entities.MaterialLine, 0, len(inputs))
	for _, in := range inputs {
		line, ok := existing[in.MaterialID]
		if !ok {
			m, err := u.material(ctx, in.MaterialID)
			if err != nil {
				return nil, err
			}
			line = pricing.NewLine(m)
		}
		line.Quantity = in.Quantity
		lines = append(lines, line)
	}
	return pricing.Normalize(lines), nil
}

func (u *ServiceOrderUseCase) material(ctx context.Context, id string) (entities.Material, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Material{}, ErrInvalidMaterialID
	}
	m, err := u.materialRepo.GetByID(ctx, id)
	if err != nil {
		return entities.Material{}, err
	}
	if m.ID == "" {
		return entities.Material{}, fmt.Errorf("%w: %s", ErrMaterialNotFound, id)
	}
	return m, nil
}

func normalizeOrderInput(in ServiceOrderInput) ServiceOrderInput {
	in.ClientID = strings.TrimSpace(in.ClientID)
	in.ServiceType = entities.ServiceType(strings.TrimSpace(string(in.ServiceType)))
	in.Description = strings.TrimSpace(in.Description)
	in.Status = entities.OrderStatus(strings.TrimSpace(string(in.Status)))
	in.Notes = strings.TrimSpace(in.Notes)
	in.LaborCost = in.LaborCost.Round(2)
	if in.Materials != nil {
		mats := make([]MaterialLineInput, len(in.Materials))
		for i, m := range in.Materials {
			mats[i] = MaterialLineInput{MaterialID: strings.TrimSpace(m.MaterialID), Quantity: m.Quantity}
		}
		in.Materials = mats
	}
	return in
}

// priceOrder recomputes every subtotal and the cached total, and drops photo
// descriptors that never reached the blob store.
func priceOrder(o *entities.ServiceOrder) {
	o.Materials = pricing.Normalize(o.Materials)
	o.Total = pricing.OrderTotal(o.Materials, o.LaborCost)
	o.Photos = entities.RemotePhotos(o.Photos)
}

package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	"climatec_os/internal/domain/entities"
	"climatec_os/internal/domain/search"
	"climatec_os/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/juju/clock"
)

var (
	ErrClientNotFound  = errors.New("client not found")
	ErrInvalidClientID = errors.New("invalid client id")
)

// ClientInput is the editable part of a client.
type ClientInput struct {
	Name    string
	Phone   string
	Email   *string
	Address *string
	Notes   *string
}

func (in ClientInput) normalized() ClientInput {
	return ClientInput{
		Name:    strings.TrimSpace(in.Name),
		Phone:   strings.TrimSpace(in.Phone),
		Email:   optionalString(in.Email),
		Address: optionalString(in.Address),
		Notes:   optionalString(in.Notes),
	}
}

func (in ClientInput) validate() error {
	v := Violations{}
	v.required("name", in.Name)
	v.required("phone", in.Phone)
	return v.Err()
}

type IClientUseCase interface {
	Create(ctx context.Context, in ClientInput) (entities.Client, error)
	Update(ctx context.Context, id string, in ClientInput) (entities.Client, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (entities.Client, error)
	List(ctx context.Context, query string) ([]entities.Client, error)
}

type ClientUseCase struct {
	repo  interfaces.IClientRepository
	clock clock.Clock
}

var _ IClientUseCase = (*ClientUseCase)(nil)

func NewClientUseCase(repo interfaces.IClientRepository, clk clock.Clock) *ClientUseCase {
	return &ClientUseCase{repo: repo, clock: orWallClock(clk)}
}

func (u *ClientUseCase) Create(ctx context.Context, in ClientInput) (entities.Client, error) {
	in = in.normalized()
	if err := in.validate(); err != nil {
		return entities.Client{}, err
	}

	now := u.clock.Now().UTC()
	c := entities.Client{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := u.repo.Create(ctx, c)
	if err != nil {
		log.Printf("[client][usecase] create failed err=%v", err)
		return entities.Client{}, err
	}
	return created, nil
}

// Update replaces the editable fields; CreatedAt is kept from the stored client.
func (u *ClientUseCase) Update(ctx context.Context, id string, in ClientInput) (entities.Client, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Client{}, ErrInvalidClientID
	}
	in = in.normalized()
	if err := in.validate(); err != nil {
		return entities.Client{}, err
	}

	current, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Client{}, err
	}

	current.Name = in.Name
	current.Phone = in.Phone
	current.Email = in.Email
	current.Address = in.Address
	current.Notes = in.Notes
	current.UpdatedAt = u.clock.Now().UTC()

	updated, err := u.repo.Update(ctx, current)
	if err != nil {
		return entities.Client{}, err
	}
	if updated.ID == "" {
		return entities.Client{}, ErrClientNotFound
	}
	return updated, nil
}

// Delete removes only the client document. Orders referencing it are kept and
// show an unknown client afterwards.
func (u *ClientUseCase) Delete(ctx context.Context, id string) error {
	if _, err := u.GetByID(ctx, id); err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, strings.TrimSpace(id)); err != nil {
		log.Printf("[client][usecase] delete failed id=%s err=%v", id, err)
		return err
	}
	return nil
}

func (u *ClientUseCase) GetByID(ctx context.Context, id string) (entities.Client, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Client{}, ErrInvalidClientID
	}

	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Client{}, err
	}
	if c.ID == "" {
		return entities.Client{}, ErrClientNotFound
	}
	return c, nil
}

// List returns clients matching query, sorted by name.
func (u *ClientUseCase) List(ctx context.Context, query string) ([]entities.Client, error) {
	all, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := search.Clients(all, query)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

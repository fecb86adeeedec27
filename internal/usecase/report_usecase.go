package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"climatec_os/internal/domain/entities"
	"climatec_os/internal/domain/reports"
	"climatec_os/internal/usecase/interfaces"

	"github.com/juju/clock"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidMonth = errors.New("invalid month, expected YYYY-MM")

const monthLayout = "2006-01"

type IReportUseCase interface {
	Monthly(ctx context.Context, month string) (reports.MonthlyStats, error)
	ServiceTypes(ctx context.Context) ([]reports.ServiceTypeShare, error)
	Clients(ctx context.Context, limit int) ([]reports.ClientOrderCount, error)
	Dashboard(ctx context.Context) (reports.DashboardStats, error)
}

// ReportUseCase loads full collections and aggregates them in memory. Months are
// cut in loc.
type ReportUseCase struct {
	clientRepo interfaces.IClientRepository
	orderRepo  interfaces.IServiceOrderRepository
	loc        *time.Location
	clock      clock.Clock
}

var _ IReportUseCase = (*ReportUseCase)(nil)

func NewReportUseCase(clientRepo interfaces.IClientRepository, orderRepo interfaces.IServiceOrderRepository, loc *time.Location, clk clock.Clock) *ReportUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportUseCase{clientRepo: clientRepo, orderRepo: orderRepo, loc: loc, clock: orWallClock(clk)}
}

// Monthly reports the month given as YYYY-MM, or the current month when empty.
func (u *ReportUseCase) Monthly(ctx context.Context, month string) (reports.MonthlyStats, error) {
	at := u.clock.Now().In(u.loc)
	if month = strings.TrimSpace(month); month != "" {
		parsed, err := time.ParseInLocation(monthLayout, month, u.loc)
		if err != nil {
			return reports.MonthlyStats{}, fmt.Errorf("%w: %q", ErrInvalidMonth, month)
		}
		at = parsed
	}

	orders, err := u.orderRepo.List(ctx)
	if err != nil {
		log.Printf("[report][usecase] monthly load failed err=%v", err)
		return reports.MonthlyStats{}, err
	}
	return reports.Monthly(orders, at), nil
}

func (u *ReportUseCase) ServiceTypes(ctx context.Context) ([]reports.ServiceTypeShare, error) {
	orders, err := u.orderRepo.List(ctx)
	if err != nil {
		log.Printf("[report][usecase] service types load failed err=%v", err)
		return nil, err
	}
	return reports.ServiceTypeBreakdown(orders), nil
}

// Clients pairs clients (by name) with their order count. limit <= 0 means all.
func (u *ReportUseCase) Clients(ctx context.Context, limit int) ([]reports.ClientOrderCount, error) {
	clients, orders, err := u.load(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(clients, func(i, j int) bool {
		return strings.ToLower(clients[i].Name) < strings.ToLower(clients[j].Name)
	})
	return reports.ClientOrderCounts(clients, orders, limit), nil
}

func (u *ReportUseCase) Dashboard(ctx context.Context) (reports.DashboardStats, error) {
	clients, orders, err := u.load(ctx)
	if err != nil {
		return reports.DashboardStats{}, err
	}
	return reports.Dashboard(clients, orders), nil
}

// load reads both collections concurrently; any failure fails the report.
func (u *ReportUseCase) load(ctx context.Context) ([]entities.Client, []entities.ServiceOrder, error) {
	var clients []entities.Client
	var orders []entities.ServiceOrder

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		clients, err = u.clientRepo.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		orders, err = u.orderRepo.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Printf("[report][usecase] load failed err=%v", err)
		return nil, nil, err
	}
	return clients, orders, nil
}

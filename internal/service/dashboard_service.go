package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
)

type DashboardService struct {
	store DashboardStore
}

func NewDashboardService(store DashboardStore) *DashboardService {
	return &DashboardService{store: store}
}

// Summary runs the independent aggregate queries concurrently.
func (s *DashboardService) Summary(ctx context.Context) (*model.Dashboard, error) {
	var d model.Dashboard
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.Buyers, err = s.store.CountActive(ctx, "buyers")
		return err
	})
	g.Go(func() (err error) {
		d.Profiles, err = s.store.CountActive(ctx, "profiles")
		return err
	})
	g.Go(func() (err error) {
		d.InventoryItems, d.StockWeightKg, err = s.store.StockSummary(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.OrdersByStatus, err = s.store.OrdersByStatus(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.OpenOrderValue, err = s.store.OpenOrderValue(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.WastageKg, err = s.store.TotalWastage(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}
	return &d, nil
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/costing"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
)

func spurGear() model.ProfileInput {
	return model.ProfileInput{
		Name:                  " Spur 20T ",
		Type:                  model.ProfileGear,
		Material:              "en8",
		DiameterMM:            100,
		LengthMM:              50,
		MaterialRate:          120,
		BurningWastagePercent: 10,
		HTRate:                40,
		TeethCount:            20,
		Module:                2.5,
		Face:                  30,
		TeethRate:             0.5,
		CynGrindingCost:       100,
		ProcessCosts:          []costing.ProcessCost{{Name: "keyway", Cost: 50}},
	}
}

func TestProfileService_CreateDerivesCosts(t *testing.T) {
	store := newMemStore()
	svc := NewProfileService(store, zap.NewNop())

	p, err := svc.Create(context.Background(), spurGear())
	require.NoError(t, err)

	assert.Equal(t, "Spur 20T", p.Name)
	assert.Equal(t, model.MaterialEN8, p.Material)
	assert.Equal(t, model.StatusActive, p.Status)
	assert.Equal(t, 3.083, p.WeightKg)
	assert.Equal(t, 3.391, p.TotalWeightKg)
	assert.Equal(t, 406.92, p.MaterialCost)
	assert.Equal(t, 135.64, p.HTCost)
	assert.Equal(t, 750.0, p.TcTgCost)
	assert.Equal(t, 1442.56, p.TotalCost)
}

func TestProfileService_UpdateRederives(t *testing.T) {
	store := newMemStore()
	svc := NewProfileService(store, zap.NewNop())
	p, err := svc.Create(context.Background(), spurGear())
	require.NoError(t, err)

	in := spurGear()
	in.ProcessCosts = nil
	in.CynGrindingCost = 0
	updated, err := svc.Update(context.Background(), p.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 1292.56, updated.TotalCost)
	assert.NotNil(t, updated.ProcessCosts)
}

func TestProfileService_RejectsInvalidInput(t *testing.T) {
	svc := NewProfileService(newMemStore(), zap.NewNop())

	in := spurGear()
	in.DiameterMM = 0
	in.Type = "rack"
	_, err := svc.Create(context.Background(), in)

	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "diameter_mm")
	assert.Contains(t, verr.Fields, "type")
}

func TestInventoryService_DerivesWeightAndStatus(t *testing.T) {
	store := newMemStore()
	svc := NewInventoryService(store, zap.NewNop())

	inv, err := svc.Create(context.Background(), model.InventoryInput{
		Material: "EN19", DiameterMM: 100, LengthMM: 50, Quantity: 10, RatePerKg: 110, Location: " Rack A ",
	})
	require.NoError(t, err)
	assert.Equal(t, 3.083, inv.UnitWeightKg)
	assert.Equal(t, 30.83, inv.TotalWeightKg)
	assert.Equal(t, model.InventoryAvailable, inv.Status)
	assert.Equal(t, "Rack A", inv.Location)

	inv, err = svc.Update(context.Background(), inv.ID, model.InventoryInput{
		Material: "EN19", DiameterMM: 100, LengthMM: 50, Quantity: 0, RatePerKg: 110,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, inv.TotalWeightKg)
	assert.Equal(t, model.InventoryOutOfStock, inv.Status)

	_, err = svc.Create(context.Background(), model.InventoryInput{Material: "EN24", DiameterMM: 1, LengthMM: 1})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestBurningWastageService(t *testing.T) {
	store := newMemStore()
	svc := NewBurningWastageService(store, zap.NewNop())
	ctx := context.Background()

	invID := store.id()
	store.inventory[invID] = model.Inventory{ID: invID}

	bw, err := svc.Create(ctx, model.BurningWastageInput{
		InventoryID: &invID, InputWeightKg: 100, WastagePercent: 5, AdjustmentKg: 0.5, Notes: " batch 7 ",
	})
	require.NoError(t, err)
	assert.Equal(t, 5.5, bw.WastageKg)
	assert.Equal(t, 94.5, bw.NetWeightKg)
	assert.Equal(t, "batch 7", bw.Notes)

	missing := int64(999)
	_, err = svc.Create(ctx, model.BurningWastageInput{OrderID: &missing, InputWeightKg: 10, WastagePercent: 1})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.Update(ctx, bw.ID, model.BurningWastageInput{InputWeightKg: 10, WastagePercent: 90, AdjustmentKg: 5})
	assert.ErrorIs(t, err, costing.ErrInvalidInput)

	require.NoError(t, svc.Delete(ctx, bw.ID))
	_, err = svc.Get(ctx, bw.ID)
	assert.Error(t, err)
}

func TestCalculationService(t *testing.T) {
	svc := NewCalculationService()

	w, err := svc.Weight(WeightInput{DiameterMM: 100, LengthMM: 50, BurningWastagePercent: 10})
	require.NoError(t, err)
	assert.Equal(t, WeightResult{WeightKg: 3.083, TotalWeightKg: 3.391}, w)

	_, err = svc.Weight(WeightInput{DiameterMM: -1, LengthMM: 50})
	assert.ErrorIs(t, err, costing.ErrInvalidInput)

	in := spurGear()
	in.Name = ""
	c, err := svc.Profile(in)
	require.NoError(t, err)
	assert.Equal(t, 1442.56, c.TotalCost)

	in.BurningWastagePercent = 150
	_, err = svc.Profile(in)
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.Weight(WeightInput{DiameterMM: 100, LengthMM: 50, BurningWastagePercent: 150})
	assert.ErrorIs(t, err, model.ErrValidation)
}

type stubDashboardStore struct {
	fail error
}

func (s stubDashboardStore) CountActive(_ context.Context, table string) (int64, error) {
	if table == "buyers" {
		return 3, nil
	}
	return 5, nil
}

func (s stubDashboardStore) StockSummary(context.Context) (int64, float64, error) {
	return 12, 120.5, nil
}

func (s stubDashboardStore) OrdersByStatus(context.Context) (map[model.OrderStatus]int64, error) {
	return map[model.OrderStatus]int64{model.OrderPending: 2}, nil
}

func (s stubDashboardStore) OpenOrderValue(context.Context) (float64, error) {
	return 8000, s.fail
}

func (s stubDashboardStore) TotalWastage(context.Context) (float64, error) {
	return 6.25, nil
}

func TestDashboardService_Summary(t *testing.T) {
	d, err := NewDashboardService(stubDashboardStore{}).Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &model.Dashboard{
		Buyers:         3,
		Profiles:       5,
		InventoryItems: 12,
		StockWeightKg:  120.5,
		OrdersByStatus: map[model.OrderStatus]int64{model.OrderPending: 2},
		OpenOrderValue: 8000,
		WastageKg:      6.25,
	}, d)

	boom := errors.New("boom")
	_, err = NewDashboardService(stubDashboardStore{fail: boom}).Summary(context.Background())
	assert.ErrorIs(t, err, boom)
}

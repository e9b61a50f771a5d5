package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/costing"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
)

type InventoryService struct {
	store InventoryStore
	log   *zap.Logger
}

func NewInventoryService(store InventoryStore, log *zap.Logger) *InventoryService {
	return &InventoryService{store: store, log: log}
}

func (s *InventoryService) List(ctx context.Context, p model.ListParams) (model.Page[model.Inventory], error) {
	p = p.Normalize()
	items, total, err := s.store.ListInventory(ctx, p)
	if err != nil {
		return model.Page[model.Inventory]{}, err
	}
	return model.NewPage(items, p, total), nil
}

func (s *InventoryService) Get(ctx context.Context, id int64) (*model.Inventory, error) {
	return s.store.GetInventory(ctx, id)
}

func (s *InventoryService) Create(ctx context.Context, in model.InventoryInput) (*model.Inventory, error) {
	inv, err := stock(in)
	if err != nil {
		return nil, err
	}
	created, err := s.store.CreateInventory(ctx, inv)
	if err != nil {
		return nil, err
	}
	s.log.Info("Inventory added",
		zap.Int64("inventory_id", created.ID),
		zap.String("material", string(created.Material)),
		zap.Int("quantity", created.Quantity))
	return created, nil
}

func (s *InventoryService) Update(ctx context.Context, id int64, in model.InventoryInput) (*model.Inventory, error) {
	inv, err := stock(in)
	if err != nil {
		return nil, err
	}
	return s.store.UpdateInventory(ctx, id, inv)
}

func (s *InventoryService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteInventory(ctx, id); err != nil {
		return err
	}
	s.log.Info("Inventory deleted", zap.Int64("inventory_id", id))
	return nil
}

func stock(in model.InventoryInput) (model.Inventory, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return model.Inventory{}, err
	}
	unit, err := costing.CylindricalWeight(in.DiameterMM, in.LengthMM)
	if err != nil {
		return model.Inventory{}, fmt.Errorf("failed to weigh inventory: %w", err)
	}
	return model.Inventory{
		Material:      in.Material,
		DiameterMM:    in.DiameterMM,
		LengthMM:      in.LengthMM,
		Quantity:      in.Quantity,
		RatePerKg:     in.RatePerKg,
		Location:      in.Location,
		UnitWeightKg:  unit,
		TotalWeightKg: costing.LineWeight(costing.Line{UnitWeightKg: unit, Quantity: in.Quantity}),
		Status:        model.StockStatus(in.Quantity),
	}, nil
}

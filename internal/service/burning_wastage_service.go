package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/costing"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/repository"
)

type BurningWastageService struct {
	store BurningWastageStore
	log   *zap.Logger
}

func NewBurningWastageService(store BurningWastageStore, log *zap.Logger) *BurningWastageService {
	return &BurningWastageService{store: store, log: log}
}

func (s *BurningWastageService) List(ctx context.Context, p model.ListParams) (model.Page[model.BurningWastage], error) {
	p = p.Normalize()
	records, total, err := s.store.ListBurningWastage(ctx, p)
	if err != nil {
		return model.Page[model.BurningWastage]{}, err
	}
	return model.NewPage(records, p, total), nil
}

func (s *BurningWastageService) Get(ctx context.Context, id int64) (*model.BurningWastage, error) {
	return s.store.GetBurningWastage(ctx, id)
}

func (s *BurningWastageService) Create(ctx context.Context, in model.BurningWastageInput) (*model.BurningWastage, error) {
	bw, err := s.measure(ctx, in)
	if err != nil {
		return nil, err
	}
	created, err := s.store.CreateBurningWastage(ctx, bw)
	if err != nil {
		return nil, err
	}
	s.log.Info("Burning wastage recorded",
		zap.Int64("burning_wastage_id", created.ID),
		zap.Float64("wastage_kg", created.WastageKg))
	return created, nil
}

func (s *BurningWastageService) Update(ctx context.Context, id int64, in model.BurningWastageInput) (*model.BurningWastage, error) {
	bw, err := s.measure(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.store.UpdateBurningWastage(ctx, id, bw)
}

func (s *BurningWastageService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteBurningWastage(ctx, id)
}

// measure validates references and derives wastage and net weight.
func (s *BurningWastageService) measure(ctx context.Context, in model.BurningWastageInput) (model.BurningWastage, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return model.BurningWastage{}, err
	}

	if in.OrderID != nil {
		if _, err := s.store.GetOrder(ctx, *in.OrderID); err != nil {
			return model.BurningWastage{}, reference("order_id", err)
		}
	}
	if in.InventoryID != nil {
		if _, err := s.store.GetInventory(ctx, *in.InventoryID); err != nil {
			return model.BurningWastage{}, reference("inventory_id", err)
		}
	}

	w, err := costing.Wastage(in.InputWeightKg, in.WastagePercent, in.AdjustmentKg)
	if err != nil {
		return model.BurningWastage{}, fmt.Errorf("failed to compute wastage: %w", err)
	}
	return model.BurningWastage{
		OrderID:        in.OrderID,
		InventoryID:    in.InventoryID,
		InputWeightKg:  in.InputWeightKg,
		WastagePercent: in.WastagePercent,
		AdjustmentKg:   in.AdjustmentKg,
		WastageKg:      w.WastageKg,
		NetWeightKg:    w.NetWeightKg,
		Notes:          in.Notes,
	}, nil
}

func reference(field string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return invalid(field, "does not exist")
	}
	return err
}

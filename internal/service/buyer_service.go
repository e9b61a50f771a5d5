package service

import (
	"context"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
	"go.uber.org/zap"
)

type BuyerService struct {
	store BuyerStore
	log   *zap.Logger
}

func NewBuyerService(store BuyerStore, log *zap.Logger) *BuyerService {
	return &BuyerService{store: store, log: log}
}

func (s *BuyerService) List(ctx context.Context, p model.ListParams) (model.Page[model.Buyer], error) {
	p = p.Normalize()
	buyers, total, err := s.store.ListBuyers(ctx, p)
	if err != nil {
		return model.Page[model.Buyer]{}, err
	}
	return model.NewPage(buyers, p, total), nil
}

func (s *BuyerService) Get(ctx context.Context, id int64) (*model.Buyer, error) {
	return s.store.GetBuyer(ctx, id)
}

func (s *BuyerService) Create(ctx context.Context, in model.BuyerInput) (*model.Buyer, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	b, err := s.store.CreateBuyer(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Info("Buyer created", zap.Int64("buyer_id", b.ID), zap.String("name", b.Name))
	return b, nil
}

func (s *BuyerService) Update(ctx context.Context, id int64, in model.BuyerInput) (*model.Buyer, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.store.UpdateBuyer(ctx, id, in)
}

// Delete deactivates the buyer. Existing orders keep referencing it.
func (s *BuyerService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeactivateBuyer(ctx, id); err != nil {
		return err
	}
	s.log.Info("Buyer deactivated", zap.Int64("buyer_id", id))
	return nil
}

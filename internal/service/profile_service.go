package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/costing"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
)

type ProfileService struct {
	store ProfileStore
	log   *zap.Logger
}

func NewProfileService(store ProfileStore, log *zap.Logger) *ProfileService {
	return &ProfileService{store: store, log: log}
}

func (s *ProfileService) List(ctx context.Context, p model.ListParams) (model.Page[model.Profile], error) {
	p = p.Normalize()
	profiles, total, err := s.store.ListProfiles(ctx, p)
	if err != nil {
		return model.Page[model.Profile]{}, err
	}
	return model.NewPage(profiles, p, total), nil
}

func (s *ProfileService) Get(ctx context.Context, id int64) (*model.Profile, error) {
	return s.store.GetProfile(ctx, id)
}

func (s *ProfileService) Create(ctx context.Context, in model.ProfileInput) (*model.Profile, error) {
	p, err := derive(in)
	if err != nil {
		return nil, err
	}
	created, err := s.store.CreateProfile(ctx, p)
	if err != nil {
		return nil, err
	}
	s.log.Info("Profile created",
		zap.Int64("profile_id", created.ID),
		zap.String("name", created.Name),
		zap.Float64("total_cost", created.TotalCost))
	return created, nil
}

func (s *ProfileService) Update(ctx context.Context, id int64, in model.ProfileInput) (*model.Profile, error) {
	p, err := derive(in)
	if err != nil {
		return nil, err
	}
	return s.store.UpdateProfile(ctx, id, p)
}

func (s *ProfileService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteProfile(ctx, id); err != nil {
		return err
	}
	s.log.Info("Profile deleted", zap.Int64("profile_id", id))
	return nil
}

// derive validates the input and computes weights and costs. Client
// supplied derived values are never trusted.
func derive(in model.ProfileInput) (model.Profile, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return model.Profile{}, err
	}
	c, err := costing.Profile(in.Spec())
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to cost profile %q: %w", in.Name, err)
	}
	return model.NewProfile(in, c), nil
}

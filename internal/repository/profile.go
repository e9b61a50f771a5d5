package repository

import (
	"context"
	"fmt"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
)

const profileColumns = `id, name, type, material, diameter_mm, length_mm, material_rate,
	burning_wastage_percent, ht_rate, teeth_count, module, face, teeth_rate, cyn_grinding_cost,
	process_costs, weight_kg, total_weight_kg, material_cost, ht_cost, tc_tg_cost, total_cost,
	status, created_at, updated_at`

func (s *Store) ListProfiles(ctx context.Context, p model.ListParams) ([]model.Profile, int64, error) {
	var w whereBuilder
	w.search(p.Search, "name", "material", "type")
	if p.Status != "" {
		w.add("status = ?", p.Status)
	}

	total, err := s.count(ctx, "profiles", &w)
	if err != nil {
		return nil, 0, err
	}

	limit, args := w.page(p.Limit, p.Offset())
	profiles, err := queryAll[model.Profile](ctx, s.getExecutor(ctx),
		"SELECT "+profileColumns+" FROM profiles"+w.String()+" ORDER BY created_at DESC, id DESC"+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, total, nil
}

func (s *Store) GetProfile(ctx context.Context, id int64) (*model.Profile, error) {
	p, err := queryOne[model.Profile](ctx, s.getExecutor(ctx),
		"SELECT "+profileColumns+" FROM profiles WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %d: %w", id, err)
	}
	return p, nil
}

// GetProfiles returns the profiles with the given ids keyed by id.
func (s *Store) GetProfiles(ctx context.Context, ids []int64) (map[int64]model.Profile, error) {
	profiles, err := queryAll[model.Profile](ctx, s.getExecutor(ctx),
		"SELECT "+profileColumns+" FROM profiles WHERE id = ANY($1)", ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}
	byID := make(map[int64]model.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}
	return byID, nil
}

func (s *Store) CreateProfile(ctx context.Context, p model.Profile) (*model.Profile, error) {
	created, err := queryOne[model.Profile](ctx, s.getExecutor(ctx), `
		INSERT INTO profiles (name, type, material, diameter_mm, length_mm, material_rate,
			burning_wastage_percent, ht_rate, teeth_count, module, face, teeth_rate, cyn_grinding_cost,
			process_costs, weight_kg, total_weight_kg, material_cost, ht_cost, tc_tg_cost, total_cost, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING `+profileColumns, profileArgs(p)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return created, nil
}

func (s *Store) UpdateProfile(ctx context.Context, id int64, p model.Profile) (*model.Profile, error) {
	args := append(profileArgs(p), id)
	updated, err := queryOne[model.Profile](ctx, s.getExecutor(ctx), `
		UPDATE profiles
		SET name = $1, type = $2, material = $3, diameter_mm = $4, length_mm = $5, material_rate = $6,
			burning_wastage_percent = $7, ht_rate = $8, teeth_count = $9, module = $10, face = $11,
			teeth_rate = $12, cyn_grinding_cost = $13, process_costs = $14, weight_kg = $15,
			total_weight_kg = $16, material_cost = $17, ht_cost = $18, tc_tg_cost = $19,
			total_cost = $20, status = $21, updated_at = now()
		WHERE id = $22
		RETURNING `+profileColumns, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile %d: %w", id, err)
	}
	return updated, nil
}

func (s *Store) DeleteProfile(ctx context.Context, id int64) error {
	tag, err := s.getExecutor(ctx).Exec(ctx, "DELETE FROM profiles WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete profile %d: %w", id, classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete profile %d: %w", id, ErrNotFound)
	}
	return nil
}

func profileArgs(p model.Profile) []any {
	return []any{
		p.Name, p.Type, p.Material, p.DiameterMM, p.LengthMM, p.MaterialRate,
		p.BurningWastagePercent, p.HTRate, p.TeethCount, p.Module, p.Face, p.TeethRate, p.CynGrindingCost,
		p.ProcessCosts, p.WeightKg, p.TotalWeightKg, p.MaterialCost, p.HTCost, p.TcTgCost, p.TotalCost, p.Status,
	}
}

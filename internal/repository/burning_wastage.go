package repository

import (
	"context"
	"fmt"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
)

const wastageColumns = `id, order_id, inventory_id, input_weight_kg, wastage_percent, adjustment_kg,
	wastage_kg, net_weight_kg, notes, created_at, updated_at`

func (s *Store) ListBurningWastage(ctx context.Context, p model.ListParams) ([]model.BurningWastage, int64, error) {
	var w whereBuilder
	w.search(p.Search, "notes")

	total, err := s.count(ctx, "burning_wastage", &w)
	if err != nil {
		return nil, 0, err
	}

	limit, args := w.page(p.Limit, p.Offset())
	records, err := queryAll[model.BurningWastage](ctx, s.getExecutor(ctx),
		"SELECT "+wastageColumns+" FROM burning_wastage"+w.String()+" ORDER BY created_at DESC, id DESC"+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list burning wastage: %w", err)
	}
	return records, total, nil
}

func (s *Store) GetBurningWastage(ctx context.Context, id int64) (*model.BurningWastage, error) {
	bw, err := queryOne[model.BurningWastage](ctx, s.getExecutor(ctx),
		"SELECT "+wastageColumns+" FROM burning_wastage WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get burning wastage %d: %w", id, err)
	}
	return bw, nil
}

func (s *Store) CreateBurningWastage(ctx context.Context, bw model.BurningWastage) (*model.BurningWastage, error) {
	created, err := queryOne[model.BurningWastage](ctx, s.getExecutor(ctx), `
		INSERT INTO burning_wastage (order_id, inventory_id, input_weight_kg, wastage_percent,
			adjustment_kg, wastage_kg, net_weight_kg, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+wastageColumns,
		bw.OrderID, bw.InventoryID, bw.InputWeightKg, bw.WastagePercent,
		bw.AdjustmentKg, bw.WastageKg, bw.NetWeightKg, bw.Notes)
	if err != nil {
		return nil, fmt.Errorf("failed to create burning wastage: %w", err)
	}
	return created, nil
}

func (s *Store) UpdateBurningWastage(ctx context.Context, id int64, bw model.BurningWastage) (*model.BurningWastage, error) {
	updated, err := queryOne[model.BurningWastage](ctx, s.getExecutor(ctx), `
		UPDATE burning_wastage
		SET order_id = $2, inventory_id = $3, input_weight_kg = $4, wastage_percent = $5,
			adjustment_kg = $6, wastage_kg = $7, net_weight_kg = $8, notes = $9, updated_at = now()
		WHERE id = $1
		RETURNING `+wastageColumns,
		id, bw.OrderID, bw.InventoryID, bw.InputWeightKg, bw.WastagePercent,
		bw.AdjustmentKg, bw.WastageKg, bw.NetWeightKg, bw.Notes)
	if err != nil {
		return nil, fmt.Errorf("failed to update burning wastage %d: %w", id, err)
	}
	return updated, nil
}

func (s *Store) DeleteBurningWastage(ctx context.Context, id int64) error {
	tag, err := s.getExecutor(ctx).Exec(ctx, "DELETE FROM burning_wastage WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete burning wastage %d: %w", id, classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete burning wastage %d: %w", id, ErrNotFound)
	}
	return nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
)

const inventoryColumns = `id, material, diameter_mm, length_mm, quantity, rate_per_kg, location,
	unit_weight_kg, total_weight_kg, status, created_at, updated_at`

func (s *Store) ListInventory(ctx context.Context, p model.ListParams) ([]model.Inventory, int64, error) {
	var w whereBuilder
	w.search(p.Search, "material", "location")
	if p.Status != "" {
		w.add("status = ?", p.Status)
	}

	total, err := s.count(ctx, "inventory", &w)
	if err != nil {
		return nil, 0, err
	}

	limit, args := w.page(p.Limit, p.Offset())
	items, err := queryAll[model.Inventory](ctx, s.getExecutor(ctx),
		"SELECT "+inventoryColumns+" FROM inventory"+w.String()+" ORDER BY created_at DESC, id DESC"+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, total, nil
}

func (s *Store) GetInventory(ctx context.Context, id int64) (*model.Inventory, error) {
	inv, err := queryOne[model.Inventory](ctx, s.getExecutor(ctx),
		"SELECT "+inventoryColumns+" FROM inventory WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory %d: %w", id, err)
	}
	return inv, nil
}

// GetInventoryForUpdate locks the inventory row until the transaction ends.
func (s *Store) GetInventoryForUpdate(ctx context.Context, id int64) (*model.Inventory, error) {
	inv, err := queryOne[model.Inventory](ctx, s.getExecutor(ctx),
		"SELECT "+inventoryColumns+" FROM inventory WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		return nil, fmt.Errorf("failed to lock inventory %d: %w", id, err)
	}
	return inv, nil
}

func (s *Store) CreateInventory(ctx context.Context, inv model.Inventory) (*model.Inventory, error) {
	created, err := queryOne[model.Inventory](ctx, s.getExecutor(ctx), `
		INSERT INTO inventory (material, diameter_mm, length_mm, quantity, rate_per_kg, location,
			unit_weight_kg, total_weight_kg, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+inventoryColumns,
		inv.Material, inv.DiameterMM, inv.LengthMM, inv.Quantity, inv.RatePerKg, inv.Location,
		inv.UnitWeightKg, inv.TotalWeightKg, inv.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to create inventory: %w", err)
	}
	return created, nil
}

func (s *Store) UpdateInventory(ctx context.Context, id int64, inv model.Inventory) (*model.Inventory, error) {
	updated, err := queryOne[model.Inventory](ctx, s.getExecutor(ctx), `
		UPDATE inventory
		SET material = $2, diameter_mm = $3, length_mm = $4, quantity = $5, rate_per_kg = $6,
			location = $7, unit_weight_kg = $8, total_weight_kg = $9, status = $10, updated_at = now()
		WHERE id = $1
		RETURNING `+inventoryColumns,
		id, inv.Material, inv.DiameterMM, inv.LengthMM, inv.Quantity, inv.RatePerKg, inv.Location,
		inv.UnitWeightKg, inv.TotalWeightKg, inv.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to update inventory %d: %w", id, err)
	}
	return updated, nil
}

// SetInventoryStock overwrites the piece count and its derived columns.
func (s *Store) SetInventoryStock(ctx context.Context, id int64, quantity int, totalWeightKg float64) error {
	tag, err := s.getExecutor(ctx).Exec(ctx, `
		UPDATE inventory
		SET quantity = $2, total_weight_kg = $3, status = $4, updated_at = now()
		WHERE id = $1`,
		id, quantity, totalWeightKg, model.StockStatus(quantity))
	if err != nil {
		return fmt.Errorf("failed to update inventory stock %d: %w", id, classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update inventory stock %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteInventory(ctx context.Context, id int64) error {
	tag, err := s.getExecutor(ctx).Exec(ctx, "DELETE FROM inventory WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory %d: %w", id, classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete inventory %d: %w", id, ErrNotFound)
	}
	return nil
}

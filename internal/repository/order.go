package repository

import (
	"context"
	"fmt"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
)

const (
	orderFrom    = "orders o JOIN buyers b ON b.id = o.buyer_id"
	orderColumns = `o.id, o.order_number, o.buyer_id, b.name AS buyer_name, o.status, o.order_date,
	o.delivery_date, o.selling_price, o.total_cost, o.total_weight_kg, o.profit, o.profit_margin,
	o.notes, o.created_by, o.created_at, o.updated_at`
)

func (s *Store) ListOrders(ctx context.Context, p model.ListParams) ([]model.Order, int64, error) {
	var w whereBuilder
	w.search(p.Search, "o.order_number", "b.name", "o.notes")
	if p.Status != "" {
		w.add("o.status = ?", p.Status)
	}

	total, err := s.count(ctx, orderFrom, &w)
	if err != nil {
		return nil, 0, err
	}

	limit, args := w.page(p.Limit, p.Offset())
	orders, err := queryAll[model.Order](ctx, s.getExecutor(ctx),
		"SELECT "+orderColumns+" FROM "+orderFrom+w.String()+" ORDER BY o.order_date DESC, o.id DESC"+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

func (s *Store) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	o, err := queryOne[model.Order](ctx, s.getExecutor(ctx),
		"SELECT "+orderColumns+" FROM "+orderFrom+" WHERE o.id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}
	return o, nil
}

// GetOrderForUpdate locks the order row until the transaction ends.
func (s *Store) GetOrderForUpdate(ctx context.Context, id int64) (*model.Order, error) {
	o, err := queryOne[model.Order](ctx, s.getExecutor(ctx),
		"SELECT "+orderColumns+" FROM "+orderFrom+" WHERE o.id = $1 FOR UPDATE OF o", id)
	if err != nil {
		return nil, fmt.Errorf("failed to lock order %d: %w", id, err)
	}
	return o, nil
}

// CreateOrder inserts the order header and returns its id.
func (s *Store) CreateOrder(ctx context.Context, o model.Order) (int64, error) {
	var id int64
	err := s.getExecutor(ctx).QueryRow(ctx, `
		INSERT INTO orders (order_number, buyer_id, status, order_date, delivery_date, selling_price,
			total_cost, total_weight_kg, profit, profit_margin, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		o.OrderNumber, o.BuyerID, o.Status, o.OrderDate, o.DeliveryDate, o.SellingPrice,
		o.TotalCost, o.TotalWeightKg, o.Profit, o.ProfitMargin, o.Notes, o.CreatedBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create order: %w", classify(err))
	}
	return id, nil
}

// UpdateOrder rewrites the editable header columns and totals.
func (s *Store) UpdateOrder(ctx context.Context, o model.Order) error {
	tag, err := s.getExecutor(ctx).Exec(ctx, `
		UPDATE orders
		SET buyer_id = $2, status = $3, delivery_date = $4, selling_price = $5, total_cost = $6,
			total_weight_kg = $7, profit = $8, profit_margin = $9, notes = $10, updated_at = now()
		WHERE id = $1`,
		o.ID, o.BuyerID, o.Status, o.DeliveryDate, o.SellingPrice, o.TotalCost,
		o.TotalWeightKg, o.Profit, o.ProfitMargin, o.Notes)
	if err != nil {
		return fmt.Errorf("failed to update order %d: %w", o.ID, classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update order %d: %w", o.ID, ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteOrder(ctx context.Context, id int64) error {
	tag, err := s.getExecutor(ctx).Exec(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete order %d: %w", id, classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete order %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) AddOrderProfile(ctx context.Context, line model.OrderProfile) error {
	_, err := s.getExecutor(ctx).Exec(ctx, `
		INSERT INTO order_profile (order_id, profile_id, quantity, unit_cost, unit_weight_kg, line_total, line_weight_kg)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		line.OrderID, line.ProfileID, line.Quantity, line.UnitCost, line.UnitWeightKg, line.LineTotal, line.LineWeightKg)
	if err != nil {
		return fmt.Errorf("failed to add profile %d to order %d: %w", line.ProfileID, line.OrderID, classify(err))
	}
	return nil
}

func (s *Store) AddOrderInventory(ctx context.Context, line model.OrderInventory) error {
	_, err := s.getExecutor(ctx).Exec(ctx, `
		INSERT INTO order_inventory (order_id, inventory_id, quantity, weight_kg)
		VALUES ($1, $2, $3, $4)`,
		line.OrderID, line.InventoryID, line.Quantity, line.WeightKg)
	if err != nil {
		return fmt.Errorf("failed to add inventory %d to order %d: %w", line.InventoryID, line.OrderID, classify(err))
	}
	return nil
}

func (s *Store) ListOrderProfiles(ctx context.Context, orderID int64) ([]model.OrderProfile, error) {
	lines, err := queryAll[model.OrderProfile](ctx, s.getExecutor(ctx), `
		SELECT op.id, op.order_id, op.profile_id, p.name AS profile_name, op.quantity, op.unit_cost,
			op.unit_weight_kg, op.line_total, op.line_weight_kg
		FROM order_profile op JOIN profiles p ON p.id = op.profile_id
		WHERE op.order_id = $1
		ORDER BY op.id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles of order %d: %w", orderID, err)
	}
	return lines, nil
}

func (s *Store) ListOrderInventory(ctx context.Context, orderID int64) ([]model.OrderInventory, error) {
	lines, err := queryAll[model.OrderInventory](ctx, s.getExecutor(ctx), `
		SELECT oi.id, oi.order_id, oi.inventory_id, i.material, oi.quantity, oi.weight_kg
		FROM order_inventory oi JOIN inventory i ON i.id = oi.inventory_id
		WHERE oi.order_id = $1
		ORDER BY oi.id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory of order %d: %w", orderID, err)
	}
	return lines, nil
}

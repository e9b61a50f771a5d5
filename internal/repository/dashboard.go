package repository

import (
	"context"
	"fmt"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
)

// CountActive counts rows with status 'active' in buyers or profiles.
func (s *Store) CountActive(ctx context.Context, table string) (int64, error) {
	switch table {
	case "buyers", "profiles":
	default:
		return 0, fmt.Errorf("count active: unsupported table %q", table)
	}
	var n int64
	err := s.getExecutor(ctx).QueryRow(ctx,
		"SELECT COUNT(*) FROM "+table+" WHERE status = $1", model.StatusActive).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

// StockSummary returns the number of inventory rows and their total weight.
func (s *Store) StockSummary(ctx context.Context) (int64, float64, error) {
	var (
		n      int64
		weight float64
	)
	err := s.getExecutor(ctx).QueryRow(ctx,
		"SELECT COUNT(*), COALESCE(SUM(total_weight_kg), 0)::float8 FROM inventory").Scan(&n, &weight)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to summarise stock: %w", err)
	}
	return n, weight, nil
}

func (s *Store) OrdersByStatus(ctx context.Context) (map[model.OrderStatus]int64, error) {
	rows, err := s.getExecutor(ctx).Query(ctx, "SELECT status, COUNT(*) FROM orders GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	defer rows.Close()

	counts := map[model.OrderStatus]int64{
		model.OrderPending:    0,
		model.OrderProcessing: 0,
		model.OrderCompleted:  0,
		model.OrderCancelled:  0,
	}
	for rows.Next() {
		var (
			status model.OrderStatus
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan order count: %w", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	return counts, nil
}

// OpenOrderValue sums the selling price of pending and processing orders.
func (s *Store) OpenOrderValue(ctx context.Context) (float64, error) {
	var v float64
	err := s.getExecutor(ctx).QueryRow(ctx,
		"SELECT COALESCE(SUM(selling_price), 0)::float8 FROM orders WHERE status IN ($1, $2)",
		model.OrderPending, model.OrderProcessing).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("failed to sum open orders: %w", err)
	}
	return v, nil
}

func (s *Store) TotalWastage(ctx context.Context) (float64, error) {
	var v float64
	err := s.getExecutor(ctx).QueryRow(ctx,
		"SELECT COALESCE(SUM(wastage_kg), 0)::float8 FROM burning_wastage").Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("failed to sum wastage: %w", err)
	}
	return v, nil
}

package model

import (
	"strings"
	"time"
)

// BurningWastage records material lost while burning stock for an order.
type BurningWastage struct {
	ID             int64     `json:"id" db:"id"`
	OrderID        *int64    `json:"order_id" db:"order_id"`
	InventoryID    *int64    `json:"inventory_id" db:"inventory_id"`
	InputWeightKg  float64   `json:"input_weight_kg" db:"input_weight_kg"`
	WastagePercent float64   `json:"wastage_percent" db:"wastage_percent"`
	AdjustmentKg   float64   `json:"adjustment_kg" db:"adjustment_kg"`
	WastageKg      float64   `json:"wastage_kg" db:"wastage_kg"`
	NetWeightKg    float64   `json:"net_weight_kg" db:"net_weight_kg"`
	Notes          string    `json:"notes" db:"notes"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

type BurningWastageInput struct {
	OrderID        *int64  `json:"order_id"`
	InventoryID    *int64  `json:"inventory_id"`
	InputWeightKg  float64 `json:"input_weight_kg"`
	WastagePercent float64 `json:"wastage_percent"`
	AdjustmentKg   float64 `json:"adjustment_kg"`
	Notes          string  `json:"notes"`
}

func (in *BurningWastageInput) Normalize() {
	in.Notes = strings.TrimSpace(in.Notes)
}

func (in BurningWastageInput) Validate() error {
	var v validator
	v.check(in.InputWeightKg > 0, "input_weight_kg", "must be greater than 0")
	v.check(in.WastagePercent >= 0 && in.WastagePercent <= 100, "wastage_percent", "must be between 0 and 100")
	if in.OrderID != nil {
		v.check(*in.OrderID > 0, "order_id", "must be a positive id")
	}
	if in.InventoryID != nil {
		v.check(*in.InventoryID > 0, "inventory_id", "must be a positive id")
	}
	return v.err()
}

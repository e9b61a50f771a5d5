package model

import (
	"strings"
	"time"
)

type InventoryStatus string

const (
	InventoryAvailable  InventoryStatus = "available"
	InventoryOutOfStock InventoryStatus = "out_of_stock"
)

// StockStatus derives the inventory status from the piece count.
func StockStatus(quantity int) InventoryStatus {
	if quantity > 0 {
		return InventoryAvailable
	}
	return InventoryOutOfStock
}

// Inventory is a batch of round bar stock of one size.
type Inventory struct {
	ID            int64           `json:"id" db:"id"`
	Material      Material        `json:"material" db:"material"`
	DiameterMM    float64         `json:"diameter_mm" db:"diameter_mm"`
	LengthMM      float64         `json:"length_mm" db:"length_mm"`
	Quantity      int             `json:"quantity" db:"quantity"`
	RatePerKg     float64         `json:"rate_per_kg" db:"rate_per_kg"`
	Location      string          `json:"location" db:"location"`
	UnitWeightKg  float64         `json:"unit_weight_kg" db:"unit_weight_kg"`
	TotalWeightKg float64         `json:"total_weight_kg" db:"total_weight_kg"`
	Status        InventoryStatus `json:"status" db:"status"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

type InventoryInput struct {
	Material   Material `json:"material"`
	DiameterMM float64  `json:"diameter_mm"`
	LengthMM   float64  `json:"length_mm"`
	Quantity   int      `json:"quantity"`
	RatePerKg  float64  `json:"rate_per_kg"`
	Location   string   `json:"location"`
}

func (in *InventoryInput) Normalize() {
	in.Material = Material(strings.ToUpper(strings.TrimSpace(string(in.Material))))
	in.Location = strings.TrimSpace(in.Location)
}

const maxLocationLength = 255

func (in InventoryInput) Validate() error {
	var v validator
	v.check(in.Material.Valid(), "material", "must be EN8 or EN19")
	v.check(in.DiameterMM > 0, "diameter_mm", "must be greater than 0")
	v.check(in.LengthMM > 0, "length_mm", "must be greater than 0")
	v.check(in.Quantity >= 0, "quantity", "cannot be negative")
	v.check(in.RatePerKg >= 0, "rate_per_kg", "cannot be negative")
	v.maxLen(in.Location, maxLocationLength, "location")
	return v.err()
}

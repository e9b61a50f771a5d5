package model

import (
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderCompleted, OrderCancelled},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Closed reports whether the order can no longer be edited.
func (s OrderStatus) Closed() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// CanTransition reports whether s may move to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID            int64            `json:"id" db:"id"`
	OrderNumber   string           `json:"order_number" db:"order_number"`
	BuyerID       int64            `json:"buyer_id" db:"buyer_id"`
	BuyerName     string           `json:"buyer_name" db:"buyer_name"`
	Status        OrderStatus      `json:"status" db:"status"`
	OrderDate     time.Time        `json:"order_date" db:"order_date"`
	DeliveryDate  *time.Time       `json:"delivery_date" db:"delivery_date"`
	SellingPrice  float64          `json:"selling_price" db:"selling_price"`
	TotalCost     float64          `json:"total_cost" db:"total_cost"`
	TotalWeightKg float64          `json:"total_weight_kg" db:"total_weight_kg"`
	Profit        float64          `json:"profit" db:"profit"`
	ProfitMargin  float64          `json:"profit_margin" db:"profit_margin"`
	Notes         string           `json:"notes" db:"notes"`
	CreatedBy     *int64           `json:"created_by" db:"created_by"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at" db:"updated_at"`
	Profiles      []OrderProfile   `json:"profiles,omitempty" db:"-"`
	Inventory     []OrderInventory `json:"inventory,omitempty" db:"-"`
}

// OrderProfile is an order line priced from a profile snapshot.
type OrderProfile struct {
	ID           int64   `json:"id" db:"id"`
	OrderID      int64   `json:"order_id" db:"order_id"`
	ProfileID    int64   `json:"profile_id" db:"profile_id"`
	ProfileName  string  `json:"profile_name" db:"profile_name"`
	Quantity     int     `json:"quantity" db:"quantity"`
	UnitCost     float64 `json:"unit_cost" db:"unit_cost"`
	UnitWeightKg float64 `json:"unit_weight_kg" db:"unit_weight_kg"`
	LineTotal    float64 `json:"line_total" db:"line_total"`
	LineWeightKg float64 `json:"line_weight_kg" db:"line_weight_kg"`
}

// OrderInventory is stock allocated to an order.
type OrderInventory struct {
	ID          int64    `json:"id" db:"id"`
	OrderID     int64    `json:"order_id" db:"order_id"`
	InventoryID int64    `json:"inventory_id" db:"inventory_id"`
	Material    Material `json:"material" db:"material"`
	Quantity    int      `json:"quantity" db:"quantity"`
	WeightKg    float64  `json:"weight_kg" db:"weight_kg"`
}

type OrderProfileInput struct {
	ProfileID int64 `json:"profile_id"`
	Quantity  int   `json:"quantity"`
}

type OrderInventoryInput struct {
	InventoryID int64 `json:"inventory_id"`
	Quantity    int   `json:"quantity"`
}

type OrderInput struct {
	BuyerID      int64                 `json:"buyer_id"`
	OrderDate    *time.Time            `json:"order_date"`
	DeliveryDate *time.Time            `json:"delivery_date"`
	SellingPrice float64               `json:"selling_price"`
	Notes        string                `json:"notes"`
	Profiles     []OrderProfileInput   `json:"profiles"`
	Inventory    []OrderInventoryInput `json:"inventory"`
}

func (in *OrderInput) Normalize() {
	in.Notes = strings.TrimSpace(in.Notes)
}

func (in OrderInput) Validate() error {
	var v validator
	v.check(in.BuyerID > 0, "buyer_id", "is required")
	v.check(in.SellingPrice >= 0, "selling_price", "cannot be negative")
	v.check(len(in.Profiles) > 0, "profiles", "need at least one line")

	seen := make(map[int64]bool)
	for _, p := range in.Profiles {
		v.check(p.ProfileID > 0, "profiles", "need a profile_id")
		v.check(p.Quantity > 0, "profiles", "quantity must be greater than 0")
		v.check(!seen[p.ProfileID], "profiles", "must not repeat a profile")
		seen[p.ProfileID] = true
	}

	seen = make(map[int64]bool)
	for _, inv := range in.Inventory {
		v.check(inv.InventoryID > 0, "inventory", "need an inventory_id")
		v.check(inv.Quantity > 0, "inventory", "quantity must be greater than 0")
		v.check(!seen[inv.InventoryID], "inventory", "must not repeat an inventory item")
		seen[inv.InventoryID] = true
	}

	if in.OrderDate != nil && in.DeliveryDate != nil {
		v.check(!in.DeliveryDate.Before(*in.OrderDate), "delivery_date", "cannot be before order_date")
	}
	return v.err()
}

// OrderUpdate edits the header of an open order. Nil fields are unchanged.
type OrderUpdate struct {
	BuyerID      *int64     `json:"buyer_id"`
	DeliveryDate *time.Time `json:"delivery_date"`
	SellingPrice *float64   `json:"selling_price"`
	Notes        *string    `json:"notes"`
}

func (in OrderUpdate) Validate() error {
	var v validator
	if in.BuyerID != nil {
		v.check(*in.BuyerID > 0, "buyer_id", "must be a positive id")
	}
	if in.SellingPrice != nil {
		v.check(*in.SellingPrice >= 0, "selling_price", "cannot be negative")
	}
	return v.err()
}

type OrderStatusInput struct {
	Status OrderStatus `json:"status"`
}

func (in OrderStatusInput) Validate() error {
	var v validator
	v.check(in.Status.Valid(), "status", "must be pending, processing, completed or cancelled")
	return v.err()
}

// Dashboard is the summary shown on the admin landing page.
type Dashboard struct {
	Buyers         int64                 `json:"buyers"`
	Profiles       int64                 `json:"profiles"`
	InventoryItems int64                 `json:"inventory_items"`
	StockWeightKg  float64               `json:"stock_weight_kg"`
	OrdersByStatus map[OrderStatus]int64 `json:"orders_by_status"`
	OpenOrderValue float64               `json:"open_order_value"`
	WastageKg      float64               `json:"wastage_kg"`
}

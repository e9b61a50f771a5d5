package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/auth"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/costing"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/repository"
)

type OrderService struct {
	store OrderStore
	log   *zap.Logger
	now   func() time.Time
}

func NewOrderService(store OrderStore, log *zap.Logger) *OrderService {
	return &OrderService{store: store, log: log, now: time.Now}
}

func (s *OrderService) List(ctx context.Context, p model.ListParams) (model.Page[model.Order], error) {
	p = p.Normalize()
	if p.Status != "" && !model.OrderStatus(p.Status).Valid() {
		return model.Page[model.Order]{}, invalid("status", "must be pending, processing, completed or cancelled")
	}
	orders, total, err := s.store.ListOrders(ctx, p)
	if err != nil {
		return model.Page[model.Order]{}, err
	}
	return model.NewPage(orders, p, total), nil
}

// Get returns the order with its profile and inventory lines.
func (s *OrderService) Get(ctx context.Context, id int64) (*model.Order, error) {
	o, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Profiles, err = s.store.ListOrderProfiles(ctx, id); err != nil {
		return nil, err
	}
	if o.Inventory, err = s.store.ListOrderInventory(ctx, id); err != nil {
		return nil, err
	}
	return o, nil
}

// Create prices the order from profile snapshots and allocates the
// requested stock in one transaction.
func (s *OrderService) Create(ctx context.Context, in model.OrderInput) (*model.Order, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	orderDate := now
	if in.OrderDate != nil {
		orderDate = *in.OrderDate
	}
	if in.DeliveryDate != nil && in.DeliveryDate.Before(orderDate) {
		return nil, invalid("delivery_date", "cannot be before order_date")
	}

	var id int64
	err := s.store.RunAtomic(ctx, func(ctx context.Context) error {
		if err := s.checkBuyer(ctx, in.BuyerID); err != nil {
			return err
		}
		lines, err := s.priceLines(ctx, in.Profiles)
		if err != nil {
			return err
		}
		totals, err := rollUp(lines, in.SellingPrice)
		if err != nil {
			return err
		}

		o := model.Order{
			OrderNumber:   orderNumber(now),
			BuyerID:       in.BuyerID,
			Status:        model.OrderPending,
			OrderDate:     orderDate,
			DeliveryDate:  in.DeliveryDate,
			SellingPrice:  in.SellingPrice,
			TotalCost:     totals.TotalCost,
			TotalWeightKg: totals.TotalWeightKg,
			Profit:        totals.Profit,
			ProfitMargin:  totals.ProfitMargin,
			Notes:         in.Notes,
		}
		if p, ok := auth.PrincipalFrom(ctx); ok {
			o.CreatedBy = &p.UserID
		}

		if id, err = s.store.CreateOrder(ctx, o); err != nil {
			return err
		}
		for _, line := range lines {
			line.OrderID = id
			if err := s.store.AddOrderProfile(ctx, line); err != nil {
				return err
			}
		}
		return s.allocate(ctx, id, in.Inventory)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Order created", zap.Int64("order_id", id), zap.Int64("buyer_id", in.BuyerID))
	return s.Get(ctx, id)
}

// Update edits the header of an open order and re-derives its totals from
// the stored line snapshots.
func (s *OrderService) Update(ctx context.Context, id int64, in model.OrderUpdate) (*model.Order, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	err := s.store.RunAtomic(ctx, func(ctx context.Context) error {
		o, err := s.store.GetOrderForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o.Status.Closed() {
			return fmt.Errorf("%w: order %s is %s", ErrOrderClosed, o.OrderNumber, o.Status)
		}

		if in.BuyerID != nil && *in.BuyerID != o.BuyerID {
			if err := s.checkBuyer(ctx, *in.BuyerID); err != nil {
				return err
			}
			o.BuyerID = *in.BuyerID
		}
		if in.DeliveryDate != nil {
			if in.DeliveryDate.Before(o.OrderDate) {
				return invalid("delivery_date", "cannot be before order_date")
			}
			o.DeliveryDate = in.DeliveryDate
		}
		if in.SellingPrice != nil {
			o.SellingPrice = *in.SellingPrice
		}
		if in.Notes != nil {
			o.Notes = strings.TrimSpace(*in.Notes)
		}

		lines, err := s.store.ListOrderProfiles(ctx, id)
		if err != nil {
			return err
		}
		totals, err := rollUp(lines, o.SellingPrice)
		if err != nil {
			return err
		}
		o.TotalCost = totals.TotalCost
		o.TotalWeightKg = totals.TotalWeightKg
		o.Profit = totals.Profit
		o.ProfitMargin = totals.ProfitMargin

		return s.store.UpdateOrder(ctx, *o)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// SetStatus moves the order along its lifecycle. Cancelling returns the
// allocated stock.
func (s *OrderService) SetStatus(ctx context.Context, id int64, in model.OrderStatusInput) (*model.Order, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	err := s.store.RunAtomic(ctx, func(ctx context.Context) error {
		o, err := s.store.GetOrderForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o.Status == in.Status {
			return nil
		}
		if !o.Status.CanTransition(in.Status) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, o.Status, in.Status)
		}
		if in.Status == model.OrderCancelled {
			if err := s.release(ctx, id); err != nil {
				return err
			}
		}
		from := o.Status
		o.Status = in.Status
		if err := s.store.UpdateOrder(ctx, *o); err != nil {
			return err
		}
		s.log.Info("Order status changed",
			zap.Int64("order_id", id),
			zap.String("from", string(from)),
			zap.String("to", string(in.Status)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the order. Stock held by an open order is returned first.
func (s *OrderService) Delete(ctx context.Context, id int64) error {
	err := s.store.RunAtomic(ctx, func(ctx context.Context) error {
		o, err := s.store.GetOrderForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !o.Status.Closed() {
			if err := s.release(ctx, id); err != nil {
				return err
			}
		}
		return s.store.DeleteOrder(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.Info("Order deleted", zap.Int64("order_id", id))
	return nil
}

func (s *OrderService) checkBuyer(ctx context.Context, buyerID int64) error {
	b, err := s.store.GetBuyer(ctx, buyerID)
	if errors.Is(err, repository.ErrNotFound) {
		return invalid("buyer_id", "does not exist")
	}
	if err != nil {
		return err
	}
	if b.Status != model.StatusActive {
		return invalid("buyer_id", "is inactive")
	}
	return nil
}

// priceLines snapshots the current cost and weight of every profile.
func (s *OrderService) priceLines(ctx context.Context, in []model.OrderProfileInput) ([]model.OrderProfile, error) {
	ids := make([]int64, 0, len(in))
	for _, l := range in {
		ids = append(ids, l.ProfileID)
	}
	profiles, err := s.store.GetProfiles(ctx, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]model.OrderProfile, 0, len(in))
	for _, l := range in {
		p, ok := profiles[l.ProfileID]
		if !ok {
			return nil, invalid("profiles", fmt.Sprintf("profile %d does not exist", l.ProfileID))
		}
		if p.Status != model.StatusActive {
			return nil, invalid("profiles", fmt.Sprintf("profile %d is inactive", l.ProfileID))
		}
		cl := costing.Line{UnitCost: p.TotalCost, UnitWeightKg: p.TotalWeightKg, Quantity: l.Quantity}
		lines = append(lines, model.OrderProfile{
			ProfileID:    p.ID,
			ProfileName:  p.Name,
			Quantity:     l.Quantity,
			UnitCost:     p.TotalCost,
			UnitWeightKg: p.TotalWeightKg,
			LineTotal:    costing.LineTotal(cl),
			LineWeightKg: costing.LineWeight(cl),
		})
	}
	return lines, nil
}

// allocate takes stock for the order. Rows are locked in id order so two
// orders touching the same bars cannot deadlock.
func (s *OrderService) allocate(ctx context.Context, orderID int64, in []model.OrderInventoryInput) error {
	sorted := append([]model.OrderInventoryInput(nil), in...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].InventoryID < sorted[j].InventoryID })

	for _, l := range sorted {
		inv, err := s.store.GetInventoryForUpdate(ctx, l.InventoryID)
		if errors.Is(err, repository.ErrNotFound) {
			return invalid("inventory", fmt.Sprintf("inventory %d does not exist", l.InventoryID))
		}
		if err != nil {
			return err
		}
		if inv.Quantity < l.Quantity {
			return stockError(inv.ID, inv.Quantity, l.Quantity)
		}

		left := inv.Quantity - l.Quantity
		if err := s.store.SetInventoryStock(ctx, inv.ID, left, restWeight(inv, left)); err != nil {
			return err
		}
		err = s.store.AddOrderInventory(ctx, model.OrderInventory{
			OrderID:     orderID,
			InventoryID: inv.ID,
			Quantity:    l.Quantity,
			WeightKg:    costing.LineWeight(costing.Line{UnitWeightKg: inv.UnitWeightKg, Quantity: l.Quantity}),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// release puts the order's allocated stock back on the shelf.
func (s *OrderService) release(ctx context.Context, orderID int64) error {
	lines, err := s.store.ListOrderInventory(ctx, orderID)
	if err != nil {
		return err
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].InventoryID < lines[j].InventoryID })

	for _, l := range lines {
		inv, err := s.store.GetInventoryForUpdate(ctx, l.InventoryID)
		if err != nil {
			return err
		}
		qty := inv.Quantity + l.Quantity
		if err := s.store.SetInventoryStock(ctx, inv.ID, qty, restWeight(inv, qty)); err != nil {
			return err
		}
	}
	return nil
}

func restWeight(inv *model.Inventory, quantity int) float64 {
	return costing.LineWeight(costing.Line{UnitWeightKg: inv.UnitWeightKg, Quantity: quantity})
}

func rollUp(lines []model.OrderProfile, sellingPrice float64) (costing.Totals, error) {
	cl := make([]costing.Line, 0, len(lines))
	for _, l := range lines {
		cl = append(cl, costing.Line{UnitCost: l.UnitCost, UnitWeightKg: l.UnitWeightKg, Quantity: l.Quantity})
	}
	return costing.OrderTotals(cl, sellingPrice)
}

func orderNumber(now time.Time) string {
	return "ORD-" + now.Format("20060102") + "-" + strings.ToUpper(uuid.NewString()[:8])
}

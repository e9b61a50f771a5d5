package service

import (
	"context"
	"maps"
	"strings"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/repository"
)

// memStore is an in-memory stand-in for repository.Store. RunAtomic
// snapshots stock and orders and restores them when fn fails.
type memStore struct {
	nextID    int64
	users     map[int64]model.User
	buyers    map[int64]model.Buyer
	profiles  map[int64]model.Profile
	inventory map[int64]model.Inventory
	orders    map[int64]model.Order
	orderProf map[int64][]model.OrderProfile
	orderInv  map[int64][]model.OrderInventory
	wastage   map[int64]model.BurningWastage
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[int64]model.User{},
		buyers:    map[int64]model.Buyer{},
		profiles:  map[int64]model.Profile{},
		inventory: map[int64]model.Inventory{},
		orders:    map[int64]model.Order{},
		orderProf: map[int64][]model.OrderProfile{},
		orderInv:  map[int64][]model.OrderInventory{},
		wastage:   map[int64]model.BurningWastage{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error {
	inv := maps.Clone(m.inventory)
	orders := maps.Clone(m.orders)
	prof := maps.Clone(m.orderProf)
	oi := maps.Clone(m.orderInv)
	if err := fn(ctx); err != nil {
		m.inventory, m.orders, m.orderProf, m.orderInv = inv, orders, prof, oi
		return err
	}
	return nil
}

// users

func (m *memStore) ListUsers(_ context.Context, p model.ListParams) ([]model.User, int64, error) {
	var out []model.User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (m *memStore) GetUser(_ context.Context, id int64) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m *memStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) CountAdmins(context.Context) (int64, error) {
	var n int64
	for _, u := range m.users {
		if u.Role == model.RoleAdmin && u.Status == model.StatusActive {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CreateUser(_ context.Context, in model.UserInput, hash string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Username, in.Username) {
			return nil, repository.ErrConflict
		}
	}
	u := model.User{ID: m.id(), Username: in.Username, Email: in.Email, PasswordHash: hash, Role: in.Role, Status: in.Status}
	m.users[u.ID] = u
	return &u, nil
}

func (m *memStore) UpdateUser(_ context.Context, id int64, in model.UserInput, hash string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Username, u.Email, u.Role, u.Status = in.Username, in.Email, in.Role, in.Status
	if hash != "" {
		u.PasswordHash = hash
	}
	m.users[id] = u
	return &u, nil
}

func (m *memStore) DeactivateUser(_ context.Context, id int64) error {
	u, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Status = model.StatusInactive
	m.users[id] = u
	return nil
}

// buyers

func (m *memStore) ListBuyers(context.Context, model.ListParams) ([]model.Buyer, int64, error) {
	var out []model.Buyer
	for _, b := range m.buyers {
		out = append(out, b)
	}
	return out, int64(len(out)), nil
}

func (m *memStore) GetBuyer(_ context.Context, id int64) (*model.Buyer, error) {
	b, ok := m.buyers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (m *memStore) CreateBuyer(_ context.Context, in model.BuyerInput) (*model.Buyer, error) {
	b := model.Buyer{ID: m.id(), Name: in.Name, Status: in.Status}
	m.buyers[b.ID] = b
	return &b, nil
}

func (m *memStore) UpdateBuyer(_ context.Context, id int64, in model.BuyerInput) (*model.Buyer, error) {
	if _, ok := m.buyers[id]; !ok {
		return nil, repository.ErrNotFound
	}
	b := model.Buyer{ID: id, Name: in.Name, Status: in.Status}
	m.buyers[id] = b
	return &b, nil
}

func (m *memStore) DeactivateBuyer(_ context.Context, id int64) error {
	b, ok := m.buyers[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.Status = model.StatusInactive
	m.buyers[id] = b
	return nil
}

// profiles

func (m *memStore) ListProfiles(context.Context, model.ListParams) ([]model.Profile, int64, error) {
	var out []model.Profile
	for _, p := range m.profiles {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (m *memStore) GetProfile(_ context.Context, id int64) (*model.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (m *memStore) GetProfiles(_ context.Context, ids []int64) (map[int64]model.Profile, error) {
	out := make(map[int64]model.Profile)
	for _, id := range ids {
		if p, ok := m.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (m *memStore) CreateProfile(_ context.Context, p model.Profile) (*model.Profile, error) {
	p.ID = m.id()
	m.profiles[p.ID] = p
	return &p, nil
}

func (m *memStore) UpdateProfile(_ context.Context, id int64, p model.Profile) (*model.Profile, error) {
	if _, ok := m.profiles[id]; !ok {
		return nil, repository.ErrNotFound
	}
	p.ID = id
	m.profiles[id] = p
	return &p, nil
}

func (m *memStore) DeleteProfile(_ context.Context, id int64) error {
	if _, ok := m.profiles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.profiles, id)
	return nil
}

// inventory

func (m *memStore) ListInventory(context.Context, model.ListParams) ([]model.Inventory, int64, error) {
	var out []model.Inventory
	for _, inv := range m.inventory {
		out = append(out, inv)
	}
	return out, int64(len(out)), nil
}

func (m *memStore) GetInventory(_ context.Context, id int64) (*model.Inventory, error) {
	inv, ok := m.inventory[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &inv, nil
}

func (m *memStore) GetInventoryForUpdate(ctx context.Context, id int64) (*model.Inventory, error) {
	return m.GetInventory(ctx, id)
}

func (m *memStore) CreateInventory(_ context.Context, inv model.Inventory) (*model.Inventory, error) {
	inv.ID = m.id()
	m.inventory[inv.ID] = inv
	return &inv, nil
}

func (m *memStore) UpdateInventory(_ context.Context, id int64, inv model.Inventory) (*model.Inventory, error) {
	if _, ok := m.inventory[id]; !ok {
		return nil, repository.ErrNotFound
	}
	inv.ID = id
	m.inventory[id] = inv
	return &inv, nil
}

func (m *memStore) SetInventoryStock(_ context.Context, id int64, qty int, weight float64) error {
	inv, ok := m.inventory[id]
	if !ok {
		return repository.ErrNotFound
	}
	inv.Quantity, inv.TotalWeightKg, inv.Status = qty, weight, model.StockStatus(qty)
	m.inventory[id] = inv
	return nil
}

func (m *memStore) DeleteInventory(_ context.Context, id int64) error {
	if _, ok := m.inventory[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.inventory, id)
	return nil
}

// orders

func (m *memStore) ListOrders(context.Context, model.ListParams) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

func (m *memStore) GetOrder(_ context.Context, id int64) (*model.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o.BuyerName = m.buyers[o.BuyerID].Name
	return &o, nil
}

func (m *memStore) GetOrderForUpdate(ctx context.Context, id int64) (*model.Order, error) {
	return m.GetOrder(ctx, id)
}

func (m *memStore) CreateOrder(_ context.Context, o model.Order) (int64, error) {
	o.ID = m.id()
	m.orders[o.ID] = o
	return o.ID, nil
}

func (m *memStore) UpdateOrder(_ context.Context, o model.Order) error {
	if _, ok := m.orders[o.ID]; !ok {
		return repository.ErrNotFound
	}
	m.orders[o.ID] = o
	return nil
}

func (m *memStore) DeleteOrder(_ context.Context, id int64) error {
	if _, ok := m.orders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.orders, id)
	delete(m.orderProf, id)
	delete(m.orderInv, id)
	return nil
}

func (m *memStore) AddOrderProfile(_ context.Context, l model.OrderProfile) error {
	l.ID = m.id()
	m.orderProf[l.OrderID] = append(m.orderProf[l.OrderID], l)
	return nil
}

func (m *memStore) AddOrderInventory(_ context.Context, l model.OrderInventory) error {
	l.ID = m.id()
	l.Material = m.inventory[l.InventoryID].Material
	m.orderInv[l.OrderID] = append(m.orderInv[l.OrderID], l)
	return nil
}

func (m *memStore) ListOrderProfiles(_ context.Context, orderID int64) ([]model.OrderProfile, error) {
	return append([]model.OrderProfile(nil), m.orderProf[orderID]...), nil
}

func (m *memStore) ListOrderInventory(_ context.Context, orderID int64) ([]model.OrderInventory, error) {
	return append([]model.OrderInventory(nil), m.orderInv[orderID]...), nil
}

// burning wastage

func (m *memStore) ListBurningWastage(context.Context, model.ListParams) ([]model.BurningWastage, int64, error) {
	var out []model.BurningWastage
	for _, w := range m.wastage {
		out = append(out, w)
	}
	return out, int64(len(out)), nil
}

func (m *memStore) GetBurningWastage(_ context.Context, id int64) (*model.BurningWastage, error) {
	w, ok := m.wastage[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &w, nil
}

func (m *memStore) CreateBurningWastage(_ context.Context, w model.BurningWastage) (*model.BurningWastage, error) {
	w.ID = m.id()
	m.wastage[w.ID] = w
	return &w, nil
}

func (m *memStore) UpdateBurningWastage(_ context.Context, id int64, w model.BurningWastage) (*model.BurningWastage, error) {
	if _, ok := m.wastage[id]; !ok {
		return nil, repository.ErrNotFound
	}
	w.ID = id
	m.wastage[id] = w
	return &w, nil
}

func (m *memStore) DeleteBurningWastage(_ context.Context, id int64) error {
	if _, ok := m.wastage[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.wastage, id)
	return nil
}

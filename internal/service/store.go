package service

import (
	"context"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
)

// Atomic runs fn in one database transaction.
type Atomic interface {
	RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error
}

type BuyerStore interface {
	ListBuyers(ctx context.Context, p model.ListParams) ([]model.Buyer, int64, error)
	GetBuyer(ctx context.Context, id int64) (*model.Buyer, error)
	CreateBuyer(ctx context.Context, in model.BuyerInput) (*model.Buyer, error)
	UpdateBuyer(ctx context.Context, id int64, in model.BuyerInput) (*model.Buyer, error)
	DeactivateBuyer(ctx context.Context, id int64) error
}

type UserStore interface {
	ListUsers(ctx context.Context, p model.ListParams) ([]model.User, int64, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CountAdmins(ctx context.Context) (int64, error)
	CreateUser(ctx context.Context, in model.UserInput, passwordHash string) (*model.User, error)
	UpdateUser(ctx context.Context, id int64, in model.UserInput, passwordHash string) (*model.User, error)
	DeactivateUser(ctx context.Context, id int64) error
}

type ProfileStore interface {
	ListProfiles(ctx context.Context, p model.ListParams) ([]model.Profile, int64, error)
	GetProfile(ctx context.Context, id int64) (*model.Profile, error)
	GetProfiles(ctx context.Context, ids []int64) (map[int64]model.Profile, error)
	CreateProfile(ctx context.Context, p model.Profile) (*model.Profile, error)
	UpdateProfile(ctx context.Context, id int64, p model.Profile) (*model.Profile, error)
	DeleteProfile(ctx context.Context, id int64) error
}

type InventoryStore interface {
	ListInventory(ctx context.Context, p model.ListParams) ([]model.Inventory, int64, error)
	GetInventory(ctx context.Context, id int64) (*model.Inventory, error)
	GetInventoryForUpdate(ctx context.Context, id int64) (*model.Inventory, error)
	CreateInventory(ctx context.Context, inv model.Inventory) (*model.Inventory, error)
	UpdateInventory(ctx context.Context, id int64, inv model.Inventory) (*model.Inventory, error)
	SetInventoryStock(ctx context.Context, id int64, quantity int, totalWeightKg float64) error
	DeleteInventory(ctx context.Context, id int64) error
}

type OrderStore interface {
	Atomic
	GetBuyer(ctx context.Context, id int64) (*model.Buyer, error)
	GetProfiles(ctx context.Context, ids []int64) (map[int64]model.Profile, error)
	GetInventoryForUpdate(ctx context.Context, id int64) (*model.Inventory, error)
	SetInventoryStock(ctx context.Context, id int64, quantity int, totalWeightKg float64) error

	ListOrders(ctx context.Context, p model.ListParams) ([]model.Order, int64, error)
	GetOrder(ctx context.Context, id int64) (*model.Order, error)
	GetOrderForUpdate(ctx context.Context, id int64) (*model.Order, error)
	CreateOrder(ctx context.Context, o model.Order) (int64, error)
	UpdateOrder(ctx context.Context, o model.Order) error
	DeleteOrder(ctx context.Context, id int64) error
	AddOrderProfile(ctx context.Context, line model.OrderProfile) error
	AddOrderInventory(ctx context.Context, line model.OrderInventory) error
	ListOrderProfiles(ctx context.Context, orderID int64) ([]model.OrderProfile, error)
	ListOrderInventory(ctx context.Context, orderID int64) ([]model.OrderInventory, error)
}

type BurningWastageStore interface {
	GetOrder(ctx context.Context, id int64) (*model.Order, error)
	GetInventory(ctx context.Context, id int64) (*model.Inventory, error)
	ListBurningWastage(ctx context.Context, p model.ListParams) ([]model.BurningWastage, int64, error)
	GetBurningWastage(ctx context.Context, id int64) (*model.BurningWastage, error)
	CreateBurningWastage(ctx context.Context, bw model.BurningWastage) (*model.BurningWastage, error)
	UpdateBurningWastage(ctx context.Context, id int64, bw model.BurningWastage) (*model.BurningWastage, error)
	DeleteBurningWastage(ctx context.Context, id int64) error
}

type DashboardStore interface {
	CountActive(ctx context.Context, table string) (int64, error)
	StockSummary(ctx context.Context) (int64, float64, error)
	OrdersByStatus(ctx context.Context) (map[model.OrderStatus]int64, error)
	OpenOrderValue(ctx context.Context) (float64, error)
	TotalWastage(ctx context.Context) (float64, error)
}

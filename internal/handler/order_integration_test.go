package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/auth"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/handler"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/repository"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/service"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../.env")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dbURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pool.Ping(context.Background()))

	store := repository.NewStore(pool)
	require.NoError(t, store.EnsureSchema(context.Background()))

	_, err = pool.Exec(context.Background(), `TRUNCATE TABLE burning_wastage, order_inventory, order_profile,
		orders, inventory, profiles, buyers, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}

type liveAPI struct {
	h     *handler.Handler
	token string
	store *repository.Store
}

func newLiveAPI(t *testing.T, pool *pgxpool.Pool) *liveAPI {
	t.Helper()
	log := zap.NewNop()
	store := repository.NewStore(pool)
	tokens := auth.NewTokenManager("integration-secret", time.Minute, time.Hour)

	users := service.NewUserService(store, log)
	admin, err := users.Create(context.Background(), model.UserInput{
		Username: "admin", Email: "admin@bs.example", Password: "change-me-now", Role: model.RoleAdmin,
	})
	require.NoError(t, err)
	access, err := tokens.Issue(*admin, auth.AccessToken)
	require.NoError(t, err)

	h := handler.NewHandler(handler.Services{
		Auth:           service.NewAuthService(store, tokens, auth.NewSessionStore(nil), auth.NewKeyedLimiter(10), log),
		Users:          users,
		Buyers:         service.NewBuyerService(store, log),
		Profiles:       service.NewProfileService(store, log),
		Inventory:      service.NewInventoryService(store, log),
		Orders:         service.NewOrderService(store, log),
		BurningWastage: service.NewBurningWastageService(store, log),
		Calculator:     service.NewCalculationService(),
		Dashboard:      service.NewDashboardService(store),
		DB:             store,
	}, handler.Options{}, log)

	return &liveAPI{h: h, token: access.Value, store: store}
}

func (a *liveAPI) call(t *testing.T, method, path string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: a.token})
	w := httptest.NewRecorder()
	a.h.ServeHTTP(w, req)
	if out != nil && w.Code < 300 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w.Code
}

func seedOrderable(t *testing.T, a *liveAPI, stock int) (buyer model.Buyer, profile model.Profile, bar model.Inventory) {
	t.Helper()
	require.Equal(t, http.StatusCreated, a.call(t, http.MethodPost, "/api/buyers",
		model.BuyerInput{Name: "Acme Gears"}, &buyer))
	require.Equal(t, http.StatusCreated, a.call(t, http.MethodPost, "/api/profiles", model.ProfileInput{
		Name: "Spur 20T", Type: model.ProfileGear, Material: model.MaterialEN8,
		DiameterMM: 100, LengthMM: 50, MaterialRate: 120, BurningWastagePercent: 10, HTRate: 40,
		TeethCount: 20, Module: 2.5, Face: 30, TeethRate: 0.5, CynGrindingCost: 100,
	}, &profile))
	require.Equal(t, http.StatusCreated, a.call(t, http.MethodPost, "/api/inventory", model.InventoryInput{
		Material: model.MaterialEN8, DiameterMM: 100, LengthMM: 50, Quantity: stock, RatePerKg: 120,
	}, &bar))
	return buyer, profile, bar
}

func TestOrderLifecycle_Integration(t *testing.T) {
	pool := setupTestDB(t)
	a := newLiveAPI(t, pool)
	buyer, profile, bar := seedOrderable(t, a, 5)
	assert.Equal(t, 1392.56, profile.TotalCost)

	var order model.Order
	code := a.call(t, http.MethodPost, "/api/orders", model.OrderInput{
		BuyerID:      buyer.ID,
		SellingPrice: 4000,
		Profiles:     []model.OrderProfileInput{{ProfileID: profile.ID, Quantity: 2}},
		Inventory:    []model.OrderInventoryInput{{InventoryID: bar.ID, Quantity: 2}},
	}, &order)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, 2785.12, order.TotalCost)
	assert.Equal(t, 6.782, order.TotalWeightKg)
	assert.Equal(t, "Acme Gears", order.BuyerName)
	require.Len(t, order.Profiles, 1)
	require.Len(t, order.Inventory, 1)

	var stock model.Inventory
	a.call(t, http.MethodGet, "/api/inventory/"+itoa(bar.ID), nil, &stock)
	assert.Equal(t, 3, stock.Quantity)

	code = a.call(t, http.MethodDelete, "/api/profiles/"+itoa(profile.ID), nil, nil)
	assert.Equal(t, http.StatusConflict, code, "profiles referenced by orders cannot be deleted")

	code = a.call(t, http.MethodPut, "/api/orders/"+itoa(order.ID)+"/status",
		model.OrderStatusInput{Status: model.OrderCancelled}, &order)
	require.Equal(t, http.StatusOK, code)

	a.call(t, http.MethodGet, "/api/inventory/"+itoa(bar.ID), nil, &stock)
	assert.Equal(t, 5, stock.Quantity)
	assert.Equal(t, model.InventoryAvailable, stock.Status)

	var dash model.Dashboard
	require.Equal(t, http.StatusOK, a.call(t, http.MethodGet, "/api/dashboard", nil, &dash))
	assert.Equal(t, int64(1), dash.OrdersByStatus[model.OrderCancelled])
	assert.Equal(t, int64(1), dash.Buyers)
}

func TestOrderCreate_Concurrency_Integration(t *testing.T) {
	pool := setupTestDB(t)
	a := newLiveAPI(t, pool)
	buyer, profile, bar := seedOrderable(t, a, 10)

	// 50 orders race for 10 bars; exactly 10 may win.
	const attempts = 50
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code := a.call(t, http.MethodPost, "/api/orders", model.OrderInput{
				BuyerID:   buyer.ID,
				Profiles:  []model.OrderProfileInput{{ProfileID: profile.ID, Quantity: 1}},
				Inventory: []model.OrderInventoryInput{{InventoryID: bar.ID, Quantity: 1}},
			}, nil)
			mu.Lock()
			defer mu.Unlock()
			switch code {
			case http.StatusCreated:
				succeeded++
			case http.StatusConflict:
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	assert.Equal(t, attempts-10, conflicts)

	var stock model.Inventory
	a.call(t, http.MethodGet, "/api/inventory/"+itoa(bar.ID), nil, &stock)
	assert.Equal(t, 0, stock.Quantity)
	assert.Equal(t, model.InventoryOutOfStock, stock.Status)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

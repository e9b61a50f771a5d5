package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/auth"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/costing"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/service"
)

type AuthService interface {
	Login(ctx context.Context, in model.LoginInput, clientKey string) (*service.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*service.Session, error)
	Logout(ctx context.Context, refreshToken string) error
	Authenticate(accessToken string) (auth.Principal, error)
	Me(ctx context.Context) (*model.User, error)
}

type OrderService interface {
	Resource[model.Order, model.OrderInput, model.OrderUpdate]
	SetStatus(ctx context.Context, id int64, in model.OrderStatusInput) (*model.Order, error)
}

type Calculator interface {
	Weight(in service.WeightInput) (service.WeightResult, error)
	Profile(in model.ProfileInput) (costing.ProfileCost, error)
}

type DashboardService interface {
	Summary(ctx context.Context) (*model.Dashboard, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Services are the dependencies of the HTTP layer.
type Services struct {
	Auth           AuthService
	Users          Resource[model.User, model.UserInput, model.UserInput]
	Buyers         Resource[model.Buyer, model.BuyerInput, model.BuyerInput]
	Profiles       Resource[model.Profile, model.ProfileInput, model.ProfileInput]
	Inventory      Resource[model.Inventory, model.InventoryInput, model.InventoryInput]
	Orders         OrderService
	BurningWastage Resource[model.BurningWastage, model.BurningWastageInput, model.BurningWastageInput]
	Calculator     Calculator
	Dashboard      DashboardService
	DB             Pinger
}

type Options struct {
	CookieSecure bool
}

type Handler struct {
	router *chi.Mux
	svc    Services
	opts   Options
	log    *zap.Logger
}

func NewHandler(svc Services, opts Options, log *zap.Logger) *Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(log))
	router.Use(middleware.Recoverer)
	router.Use(compressor().Handler)

	h := &Handler{
		router: router,
		svc:    svc,
		opts:   opts,
		log:    log,
	}

	h.registerRoutes()
	return h
}

func (h *Handler) registerRoutes() {
	h.router.Get("/health", h.HealthCheck)

	h.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Login)
		r.Post("/auth/refresh", h.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(h.authenticate)

			r.Post("/auth/logout", h.Logout)
			r.Get("/auth/me", h.Me)

			r.Route("/users", func(r chi.Router) {
				r.Use(requireAdmin(h))
				resource[model.User, model.UserInput, model.UserInput]{h, h.svc.Users}.mount(r, false)
			})
			r.Route("/buyers", func(r chi.Router) {
				resource[model.Buyer, model.BuyerInput, model.BuyerInput]{h, h.svc.Buyers}.mount(r, true)
			})
			r.Route("/profiles", func(r chi.Router) {
				resource[model.Profile, model.ProfileInput, model.ProfileInput]{h, h.svc.Profiles}.mount(r, true)
			})
			r.Route("/inventory", func(r chi.Router) {
				resource[model.Inventory, model.InventoryInput, model.InventoryInput]{h, h.svc.Inventory}.mount(r, true)
			})
			r.Route("/orders", func(r chi.Router) {
				resource[model.Order, model.OrderInput, model.OrderUpdate]{h, h.svc.Orders}.mount(r, true)
				r.Put("/{id}/status", h.SetOrderStatus)
			})
			r.Route("/burning-wastage", func(r chi.Router) {
				resource[model.BurningWastage, model.BurningWastageInput, model.BurningWastageInput]{h, h.svc.BurningWastage}.mount(r, true)
			})

			r.Post("/calculations/weight", h.CalculateWeight)
			r.Post("/calculations/profile", h.CalculateProfile)
			r.Get("/dashboard", h.Dashboard)
		})
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.svc.DB.Ping(ctx); err != nil {
		h.log.Warn("Health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/arun-kumar2004/TastyCart/internal/repository"
)

type RouterConfig struct {
	Users          repository.UserRepository
	Menu           *MenuHandler
	Cart           *CartHandler
	Checkout       *CheckoutHandler
	Orders         *OrdersHandler
	RequestTimeout time.Duration
}

func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Users))

		r.Route("/menu", func(r chi.Router) {
			r.Get("/", cfg.Menu.List)
			r.Post("/", cfg.Menu.Create)
			r.Get("/popular", cfg.Menu.Popular)
			r.Get("/{item_id}", cfg.Menu.Get)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cfg.Cart.View)
			r.Post("/items/{item_id}", cfg.Cart.Add)
			r.Delete("/items/{item_id}", cfg.Cart.Remove)
			r.Post("/items/{item_id}/increase", cfg.Cart.Increase)
			r.Post("/items/{item_id}/decrease", cfg.Cart.Decrease)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", cfg.Checkout.Pending)
			r.Post("/stage/{item_id}", cfg.Checkout.StageSingle)
			r.Post("/stage-cart", cfg.Checkout.StageFromCart)
			r.Post("/begin", cfg.Checkout.Begin)
			r.Post("/resend", cfg.Checkout.Resend)
			r.Post("/verify", cfg.Checkout.Verify)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", cfg.Orders.List)
			r.Route("/{order_id}", func(r chi.Router) {
				r.Get("/", cfg.Orders.Get)
				r.Delete("/", cfg.Orders.Delete)
				r.Post("/status", cfg.Orders.UpdateStatus)
				r.Post("/delivery-otp", cfg.Orders.RequestDeliveryOTP)
				r.Post("/delivery-otp/verify", cfg.Orders.VerifyDeliveryOTP)
				r.Post("/cancel-otp", cfg.Orders.SendCancelOTP)
				r.Post("/cancel-otp/verify", cfg.Orders.VerifyCancelOTP)
			})
		})
	})

	return r
}

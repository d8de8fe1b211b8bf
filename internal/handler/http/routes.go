package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-shop-keeper/internal/config"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, h.withMetrics)
	if h.settings.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.settings.RequestTimeout))
	}
	router.Use(middleware.Compress(5))

	router.NotFound(h.notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	router.Handle("/metrics", h.metrics.Handler())

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/admin/login", h.adminLogin)

		r.Get("/api/products", h.listProducts)
		r.Get("/api/products/{id}", h.getProduct)

		r.Get("/api/orders/user/{id}", h.listUserOrders)

		r.Post("/api/contact", h.submitContact)

		r.Get("/api/health", h.health)
		r.Get("/api/version", h.getServerVersion)
	})

	// routes for any authenticated user
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/auth/me", h.me)
		r.Get("/api/orders", h.listMyOrders)
	})

	// order placement, guarded by the configured order policy
	router.Group(func(r chi.Router) {
		if h.settings.OrderPolicy == config.OrderPolicyRequired {
			r.Use(h.auth)
		} else {
			r.Use(h.optionalAuth)
		}
		r.Use(h.withIdempotency)

		r.Post("/api/orders", h.placeOrder)
	})

	// admin routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.requireAdmin)

		r.Post("/api/admin/products", h.createProduct)
		r.Post("/api/admin/products/images", h.requestImageUpload)
		r.Put("/api/admin/products/{id}", h.updateProduct)
		r.Delete("/api/admin/products/{id}", h.deleteProduct)

		r.Get("/api/admin/orders", h.listAllOrders)
		r.Put("/api/admin/orders/{id}/status", h.updateOrderStatus)

		r.Get("/api/admin/contacts", h.listContacts)
	})

	return router
}

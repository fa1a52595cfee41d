package purchases

import (
	"github.com/go-chi/chi/v5"

	"github.com/meridian-erp/meridian-erp/internal/rbac"
)

// MountRoutes registers purchase routes with their permission guards.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(rbac.PermPurchasesRead))
		r.Get("/purchases", h.list)
		r.Get("/purchases/{id}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(rbac.PermPurchasesCreate))
		r.Post("/purchases", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(rbac.PermPurchasesApprove))
		r.Post("/purchases/{id}/approve", h.approve)
		r.Post("/purchases/{id}/reject", h.reject)
	})
}

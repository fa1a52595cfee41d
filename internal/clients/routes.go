package clients

import (
	"github.com/go-chi/chi/v5"

	"github.com/meridian-erp/meridian-erp/internal/rbac"
)

// MountRoutes registers client routes with their permission guards.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(rbac.PermClientsRead))
		r.Get("/clients", h.list)
		r.Get("/clients/{id}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(rbac.PermClientsCreate))
		r.Post("/clients", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(rbac.PermClientsUpdate))
		r.Patch("/clients/{id}", h.update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(rbac.PermClientsDelete))
		r.Delete("/clients/{id}", h.delete)
	})
}

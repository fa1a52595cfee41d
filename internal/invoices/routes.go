package invoices

import (
	"github.com/go-chi/chi/v5"

	"github.com/meridian-erp/meridian-erp/internal/rbac"
)

// MountRoutes registers invoice routes with their permission guards.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(rbac.PermInvoicesRead))
		r.Get("/invoices", h.list)
		r.Get("/invoices/{id}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(rbac.PermInvoicesCreate))
		r.Post("/invoices", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(rbac.PermInvoicesUpdate))
		r.Patch("/invoices/{id}", h.update)
		r.Post("/invoices/{id}/pay", h.pay)
		r.Post("/invoices/{id}/cancel", h.cancel)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(rbac.PermInvoicesApprove))
		r.Post("/invoices/{id}/approve", h.approve)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(rbac.PermInvoicesDelete))
		r.Delete("/invoices/{id}", h.delete)
	})
}

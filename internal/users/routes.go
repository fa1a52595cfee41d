package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/meridian-erp/meridian-erp/internal/rbac"
)

// MountRoutes registers user administration routes. Every endpoint requires
// the users:manage permission.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(rbac.PermUsersManage))
		r.Get("/users", h.list)
		r.Post("/users", h.create)
		r.Get("/users/{id}", h.get)
		r.Patch("/users/{id}", h.update)
		r.Delete("/users/{id}", h.delete)
		r.Post("/users/{id}/roles", h.assignRole)
		r.Delete("/users/{id}/roles/{roleID}", h.removeRole)
	})
}

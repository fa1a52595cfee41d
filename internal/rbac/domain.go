package rbac

import "time"

// Permission represents an atomic capability. Slug has the shape
// <resource>:<action> and matches a catalog entry.
type Permission struct {
	ID          int64  `json:"id"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Role represents a named permission grouping assignable to users. Name is
// unique. Permissions is populated only when the role was loaded with its
// permission associations.
type Role struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

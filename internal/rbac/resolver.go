package rbac

import "sort"

// EffectivePermissions returns the deduplicated union of permission slugs
// across roles, sorted for stable output. Precondition: each role must have
// been loaded with its permission associations; a role slice missing that
// second join level silently yields fewer grants, so repositories returning
// roles for resolution always perform the two-level join. No roles, or roles
// without permissions, produce an empty set, which simply means no access.
func EffectivePermissions(roles []Role) []string {
	seen := make(map[string]struct{})
	for _, role := range roles {
		for _, perm := range role.Permissions {
			seen[perm.Slug] = struct{}{}
		}
	}
	slugs := make([]string, 0, len(seen))
	for slug := range seen {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

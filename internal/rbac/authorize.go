package rbac

// Authorize decides whether a granted permission set satisfies a required
// one. Semantics are all-of: every required slug must be present, a single
// missing one denies the whole operation. An empty required set always
// allows. The function is pure; callers supply the request's token-derived
// grants, never a live database view.
func Authorize(granted, required []string) bool {
	if len(required) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(granted))
	for _, g := range granted {
		set[g] = struct{}{}
	}
	for _, r := range required {
		if _, ok := set[r]; !ok {
			return false
		}
	}
	return true
}

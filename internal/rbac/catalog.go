package rbac

// Permission identifiers follow the fixed shape <resource>:<action>. The
// catalog is closed: permissions are created at seed time only and every
// route guard references one of these constants by string equality.
const (
	PermInvoicesRead    = "invoices:read"
	PermInvoicesCreate  = "invoices:create"
	PermInvoicesUpdate  = "invoices:update"
	PermInvoicesDelete  = "invoices:delete"
	PermInvoicesApprove = "invoices:approve"

	PermClientsRead   = "clients:read"
	PermClientsCreate = "clients:create"
	PermClientsUpdate = "clients:update"
	PermClientsDelete = "clients:delete"

	PermPurchasesRead    = "purchases:read"
	PermPurchasesCreate  = "purchases:create"
	PermPurchasesApprove = "purchases:approve"

	PermUsersManage = "users:manage"
	PermRolesManage = "roles:manage"

	PermItemsRead   = "items:read"
	PermItemsCreate = "items:create"
	PermItemsUpdate = "items:update"
	PermItemsDelete = "items:delete"
)

// CatalogEntry pairs a permission slug with its human readable description.
type CatalogEntry struct {
	Slug        string
	Description string
}

var catalog = []CatalogEntry{
	{PermInvoicesRead, "View invoices"},
	{PermInvoicesCreate, "Create invoices"},
	{PermInvoicesUpdate, "Update invoices"},
	{PermInvoicesDelete, "Delete invoices"},
	{PermInvoicesApprove, "Approve invoices"},
	{PermClientsRead, "View clients"},
	{PermClientsCreate, "Create clients"},
	{PermClientsUpdate, "Update clients"},
	{PermClientsDelete, "Delete clients"},
	{PermPurchasesRead, "View purchases"},
	{PermPurchasesCreate, "Create purchases"},
	{PermPurchasesApprove, "Approve or reject purchases"},
	{PermUsersManage, "Manage user accounts and role assignments"},
	{PermRolesManage, "Manage roles and their permissions"},
	{PermItemsRead, "View catalog items"},
	{PermItemsCreate, "Create catalog items"},
	{PermItemsUpdate, "Update catalog items"},
	{PermItemsDelete, "Delete catalog items"},
}

var catalogIndex = func() map[string]struct{} {
	idx := make(map[string]struct{}, len(catalog))
	for _, e := range catalog {
		idx[e.Slug] = struct{}{}
	}
	return idx
}()

// Catalog returns the full permission catalog in declaration order.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}

// Known reports whether slug is a member of the catalog.
func Known(slug string) bool {
	_, ok := catalogIndex[slug]
	return ok
}

package clients

type CreateClientRequest struct {
	Name  string  `json:"name" validate:"required,max=200"`
	TaxID string  `json:"tax_id" validate:"required,max=50"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

type UpdateClientRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,max=200"`
	TaxID *string `json:"tax_id,omitempty" validate:"omitempty,max=50"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

type ListClientsRequest struct {
	Search *string `json:"search,omitempty"`
	Limit  int     `json:"limit" validate:"gte=0,lte=1000"`
	Offset int     `json:"offset" validate:"gte=0"`
}

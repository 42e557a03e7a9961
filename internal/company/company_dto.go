package company

type CreateCompanyRequest struct {
	Name    string `json:"name" binding:"required"`
	Slug    string `json:"slug"`
	Logo    string `json:"logo"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type UpdateCompanyRequest struct {
	Name    *string `json:"name"`
	Slug    *string `json:"slug"`
	Logo    *string `json:"logo"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type SetSettingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value any    `json:"value"`
}

type CompanyResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Slug      string         `json:"slug"`
	Logo      string         `json:"logo,omitempty"`
	Email     string         `json:"email,omitempty"`
	Phone     string         `json:"phone,omitempty"`
	Address   string         `json:"address,omitempty"`
	Settings  map[string]any `json:"settings,omitempty"`
	IsActive  bool           `json:"is_active"`
	CreatedAt string         `json:"created_at,omitempty"`
	UpdatedAt string         `json:"updated_at,omitempty"`
}

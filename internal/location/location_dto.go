package location

type CreateLocationRequest struct {
	Name           string `json:"name" binding:"required"`
	Code           string `json:"code" binding:"required"`
	Address        string `json:"address"`
	City           string `json:"city"`
	State          string `json:"state"`
	Country        string `json:"country"`
	PostalCode     string `json:"postal_code"`
	Timezone       string `json:"timezone"`
	Phone          string `json:"phone"`
	Email          string `json:"email" binding:"omitempty,email"`
	IsHeadquarters bool   `json:"is_headquarters"`
}

type UpdateLocationRequest struct {
	Name           *string `json:"name"`
	Code           *string `json:"code"`
	Address        *string `json:"address"`
	City           *string `json:"city"`
	State          *string `json:"state"`
	Country        *string `json:"country"`
	PostalCode     *string `json:"postal_code"`
	Timezone       *string `json:"timezone"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email" binding:"omitempty,email"`
	IsHeadquarters *bool   `json:"is_headquarters"`
}

type LocationResponse struct {
	ID             string `json:"id"`
	CompanyID      string `json:"company_id"`
	Name           string `json:"name"`
	Code           string `json:"code"`
	Address        string `json:"address,omitempty"`
	City           string `json:"city,omitempty"`
	State          string `json:"state,omitempty"`
	Country        string `json:"country,omitempty"`
	PostalCode     string `json:"postal_code,omitempty"`
	Timezone       string `json:"timezone,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
	IsHeadquarters bool   `json:"is_headquarters"`
	CreatedAt      string `json:"created_at,omitempty"`
	UpdatedAt      string `json:"updated_at,omitempty"`
}

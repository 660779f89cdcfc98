package dto

import "time"

// AddressDTO dirección de cliente.
type AddressDTO struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country,omitempty"`
}

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Name    string     `json:"name" validate:"required,max=255"`
	Email   string     `json:"email" validate:"required,email"`
	Phone   string     `json:"phone" validate:"required,max=50"`
	GSTIN   string     `json:"gstin" validate:"required,max=20"`
	Address AddressDTO `json:"address"`
}

// UpdateClientRequest body para PATCH /api/clients/:id. Solo se aplican los campos presentes;
// la dirección se fusiona campo a campo.
type UpdateClientRequest struct {
	Name    *string     `json:"name" validate:"omitempty,max=255"`
	Email   *string     `json:"email" validate:"omitempty,email"`
	Phone   *string     `json:"phone" validate:"omitempty,max=50"`
	GSTIN   *string     `json:"gstin" validate:"omitempty,max=20"`
	Address *AddressDTO `json:"address"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	GSTIN     string     `json:"gstin"`
	Address   AddressDTO `json:"address"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

package dto

import "time"

// BusinessAddressDTO dirección de la empresa.
type BusinessAddressDTO struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Pincode string `json:"pincode" validate:"required"`
}

// BankDetailsDTO datos bancarios.
type BankDetailsDTO struct {
	AccountName   string `json:"account_name" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required"`
	BankName      string `json:"bank_name" validate:"required"`
	IFSCCode      string `json:"ifsc_code" validate:"required"`
	Branch        string `json:"branch" validate:"required"`
}

// BusinessProfileRequest body para POST /api/business (crear o actualizar).
type BusinessProfileRequest struct {
	Name               string             `json:"name" validate:"required"`
	Address            BusinessAddressDTO `json:"address"`
	Phone              string             `json:"phone" validate:"required"`
	Email              string             `json:"email" validate:"required,email"`
	Website            string             `json:"website"`
	GSTIN              string             `json:"gstin" validate:"required"`
	PAN                string             `json:"pan" validate:"required"`
	BankDetails        BankDetailsDTO     `json:"bank_details"`
	Logo               string             `json:"logo,omitempty"`
	TermsAndConditions string             `json:"terms_and_conditions,omitempty"`
}

// UpdateLogoRequest body para PATCH /api/business/logo.
type UpdateLogoRequest struct {
	Logo string `json:"logo" validate:"required"`
}

// BusinessProfileResponse perfil de empresa en respuestas.
type BusinessProfileResponse struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Address            BusinessAddressDTO `json:"address"`
	Phone              string             `json:"phone"`
	Email              string             `json:"email"`
	Website            string             `json:"website,omitempty"`
	GSTIN              string             `json:"gstin"`
	PAN                string             `json:"pan"`
	BankDetails        BankDetailsDTO     `json:"bank_details"`
	Logo               string             `json:"logo,omitempty"`
	TermsAndConditions string             `json:"terms_and_conditions"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

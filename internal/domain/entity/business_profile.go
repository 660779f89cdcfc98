package entity

import (
	"encoding/base64"
	"strings"
	"time"
)

// DefaultTermsAndConditions términos por defecto del perfil de empresa.
const DefaultTermsAndConditions = "1. Payment is due within 30 days\n" +
	"2. Goods once sold will not be taken back\n" +
	"3. Interest at 18% will be charged on delayed payments"

// BusinessAddress dirección de la empresa emisora.
type BusinessAddress struct {
	Street  string
	City    string
	State   string
	Pincode string
}

// BankDetails datos bancarios impresos en la factura.
type BankDetails struct {
	AccountName   string
	AccountNumber string
	BankName      string
	IFSCCode      string
	Branch        string
}

// BusinessProfile perfil de la empresa emisora. Solo puede existir una instancia.
type BusinessProfile struct {
	ID                 string
	Name               string
	Address            BusinessAddress
	Phone              string
	Email              string
	Website            string
	GSTIN              string
	PAN                string
	Bank               BankDetails
	Logo               string // imagen en base64 (acepta prefijo data URI)
	TermsAndConditions string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// MissingFields lista los campos obligatorios vacíos.
func (b *BusinessProfile) MissingFields() []string {
	required := []struct {
		name  string
		value string
	}{
		{"name", b.Name},
		{"address.street", b.Address.Street},
		{"address.city", b.Address.City},
		{"address.state", b.Address.State},
		{"address.pincode", b.Address.Pincode},
		{"phone", b.Phone},
		{"email", b.Email},
		{"gstin", b.GSTIN},
		{"pan", b.PAN},
		{"bank_details.account_name", b.Bank.AccountName},
		{"bank_details.account_number", b.Bank.AccountNumber},
		{"bank_details.bank_name", b.Bank.BankName},
		{"bank_details.ifsc_code", b.Bank.IFSCCode},
		{"bank_details.branch", b.Bank.Branch},
	}
	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// LogoBytes decodifica el logo. Devuelve (nil, "", nil) si no hay logo.
// El tipo se deduce del prefijo data URI; sin prefijo se asume PNG.
func (b *BusinessProfile) LogoBytes() ([]byte, string, error) {
	raw := strings.TrimSpace(b.Logo)
	if raw == "" {
		return nil, "", nil
	}
	imageType := "PNG"
	if strings.HasPrefix(raw, "data:") {
		header, payload, ok := strings.Cut(raw, ",")
		if ok {
			raw = payload
			if strings.Contains(header, "jpeg") || strings.Contains(header, "jpg") {
				imageType = "JPG"
			}
		}
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, "", err
	}
	return data, imageType, nil
}

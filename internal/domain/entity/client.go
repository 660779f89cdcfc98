package entity

import (
	"strings"
	"time"
)

// DefaultCountry país por defecto de las direcciones de clientes.
const DefaultCountry = "India"

// Address dirección postal de un cliente.
type Address struct {
	Street  string
	City    string
	State   string
	Pincode string
	Country string
}

// Merge sobreescribe solo los campos no vacíos de patch.
func (a Address) Merge(patch Address) Address {
	if patch.Street != "" {
		a.Street = patch.Street
	}
	if patch.City != "" {
		a.City = patch.City
	}
	if patch.State != "" {
		a.State = patch.State
	}
	if patch.Pincode != "" {
		a.Pincode = patch.Pincode
	}
	if patch.Country != "" {
		a.Country = patch.Country
	}
	return a
}

// Client representa un cliente facturable. Email y GSTIN son únicos.
type Client struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	GSTIN     string // GSTIN del cliente (India)
	Address   Address
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AddressLines devuelve nombre y dirección en líneas, omitiendo las vacías.
// La última línea es "Estado - Pincode".
func (c *Client) AddressLines() []string {
	lines := make([]string, 0, 4)
	for _, s := range []string{c.Name, c.Address.Street, c.Address.City} {
		if strings.TrimSpace(s) != "" {
			lines = append(lines, s)
		}
	}
	last := c.Address.State
	if c.Address.Pincode != "" {
		if last != "" {
			last += " - "
		}
		last += c.Address.Pincode
	}
	if last != "" {
		lines = append(lines, last)
	}
	return lines
}

package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
)

func TestApplySaleType_IgnoraTasaDelCliente(t *testing.T) {
	cases := map[entity.SaleType]int64{
		entity.SaleTypeCentral5:  5,
		entity.SaleTypeCentral18: 18,
		entity.SaleTypeCentral28: 28,
		"Local - 12%":            18,
		"":                       18,
	}
	for saleType, want := range cases {
		inv := &entity.Invoice{SaleType: saleType, TaxRate: decimal.NewFromInt(99)}
		inv.ApplySaleType()
		assert.True(t, inv.TaxRate.Equal(decimal.NewFromInt(want)), "sale type %q", saleType)
	}
}

func TestInvoiceStatus_Transiciones(t *testing.T) {
	cases := []struct {
		from, to entity.InvoiceStatus
		ok       bool
	}{
		{entity.InvoiceStatusDraft, entity.InvoiceStatusSent, true},
		{entity.InvoiceStatusDraft, entity.InvoiceStatusCancelled, true},
		{entity.InvoiceStatusSent, entity.InvoiceStatusPaid, true},
		{entity.InvoiceStatusSent, entity.InvoiceStatusCancelled, true},
		{entity.InvoiceStatusPaid, entity.InvoiceStatusPaid, true},
		{entity.InvoiceStatusDraft, entity.InvoiceStatusPaid, false},
		{entity.InvoiceStatusPaid, entity.InvoiceStatusDraft, false},
		{entity.InvoiceStatusCancelled, entity.InvoiceStatusSent, false},
		{entity.InvoiceStatusPaid, entity.InvoiceStatusCancelled, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestStockAfter(t *testing.T) {
	item := &entity.InventoryItem{Stock: 10}

	_, err := item.StockAfter(-15)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, int64(-5), vErr.Details["resulting_stock"])
	assert.Equal(t, int64(10), item.Stock, "el artículo no se modifica")

	next, err := item.StockAfter(-10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), next)
}

func TestClientAddressLines(t *testing.T) {
	c := &entity.Client{
		Name:    "Acme Traders",
		Address: entity.Address{Street: "12 MG Road", City: "Pune", State: "Maharashtra", Pincode: "411001"},
	}
	assert.Equal(t, []string{"Acme Traders", "12 MG Road", "Pune", "Maharashtra - 411001"}, c.AddressLines())

	c.Address = entity.Address{State: "Goa"}
	assert.Equal(t, []string{"Acme Traders", "Goa"}, c.AddressLines())
}

func TestBusinessProfileLogoBytes(t *testing.T) {
	b := &entity.BusinessProfile{Logo: "data:image/jpeg;base64,aGVsbG8="}
	data, kind, err := b.LogoBytes()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.Equal(t, "JPG", kind)

	b.Logo = ""
	data, _, err = b.LogoBytes()
	require.NoError(t, err)
	assert.Nil(t, data)

	b.Logo = "%%%"
	_, _, err = b.LogoBytes()
	assert.Error(t, err)
}

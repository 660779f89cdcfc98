package numwords_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-gst/pkg/numwords"
)

func TestConvert(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "Zero"},
		{7, "Seven"},
		{13, "Thirteen"},
		{40, "Forty"},
		{99, "Ninety Nine"},
		{100, "One Hundred"},
		{101, "One Hundred One"},
		{999, "Nine Hundred Ninety Nine"},
		{1000, "One Thousand"},
		{1500, "One Thousand Five Hundred"},
		{20019, "Twenty Thousand Nineteen"},
		{100000, "One Lakh"},
		{250000, "Two Lakh Fifty Thousand"},
		{1234567, "Twelve Lakh Thirty Four Thousand Five Hundred Sixty Seven"},
		{99999999, "Nine Hundred Ninety Nine Lakh Ninety Nine Thousand Nine Hundred Ninety Nine"},
		{100000000, "One Thousand Lakh"},
	}
	for _, tc := range cases {
		got, err := numwords.Convert(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "entrada %d", tc.in)
	}
}

func TestConvert_NegativoEsError(t *testing.T) {
	_, err := numwords.Convert(-1)
	assert.ErrorIs(t, err, numwords.ErrNegative)
}

func TestRupees_TruncaDecimales(t *testing.T) {
	got, err := numwords.Rupees(decimal.RequireFromString("1180.99"))
	require.NoError(t, err)
	assert.Equal(t, "Rupees One Thousand One Hundred Eighty Only", got)
}

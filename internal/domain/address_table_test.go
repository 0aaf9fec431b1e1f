package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddressTable(t *testing.T) {
	table, err := NewAddressTable(
		[]string{"Depot", "A  St", "B St"},
		[][]float64{
			{0, 3, 5},
			{3, 0, 2},
			{5, 2, 0},
		},
	)
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, "A St", table.Address(1))
	assert.Equal(t, []string{"Depot", "A St", "B St"}, table.Addresses())

	i, ok := table.IndexOf(" A St ")
	require.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = table.IndexOf("C St")
	assert.False(t, ok)

	assert.Equal(t, 2.0, table.Distance(1, 2))
	assert.Equal(t, 2.0, table.Distance(2, 1))
	assert.Equal(t, 5.0, table.Distance(DepotIndex, 2))
}

func TestNewAddressTableValidation(t *testing.T) {
	cases := []struct {
		name      string
		addresses []string
		distances [][]float64
		want      error
	}{
		{"empty", nil, nil, ErrEmptyAddressTable},
		{"row count", []string{"D", "A"}, [][]float64{{0, 1}}, ErrMatrixShape},
		{"column count", []string{"D", "A"}, [][]float64{{0, 1}, {1}}, ErrMatrixShape},
		{"duplicate", []string{"D", "D"}, [][]float64{{0, 1}, {1, 0}}, ErrDuplicateAddress},
		{"negative", []string{"D", "A"}, [][]float64{{0, -1}, {-1, 0}}, ErrNegativeDistance},
		{"asymmetric", []string{"D", "A"}, [][]float64{{0, 1}, {2, 0}}, ErrAsymmetricDistances},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewAddressTable(tc.addresses, tc.distances)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

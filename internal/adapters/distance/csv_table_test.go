package distance

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depot-router/internal/domain"
)

func TestReadAddressTableLowerTriangle(t *testing.T) {
	chart := strings.Join([]string{
		"4001 South 700 East,0,,",
		"1060 Dalton Ave S,7.2,0,",
		"1330 2100 S,3.8,7.1,0",
	}, "\n")

	table, err := ReadAddressTable(context.Background(), strings.NewReader(chart))
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, "4001 South 700 East", table.Address(domain.DepotIndex))
	assert.Equal(t, 7.2, table.Distance(0, 1))
	assert.Equal(t, 7.2, table.Distance(1, 0))
	assert.Equal(t, 7.1, table.Distance(1, 2))
	assert.Equal(t, 3.8, table.Distance(2, 0))
	assert.Equal(t, 0.0, table.Distance(2, 2))
}

func TestReadAddressTableFullMatrixWithBlankDiagonal(t *testing.T) {
	chart := "Depot,,3,5\nA,3,,2\nB,5,2,\n"

	table, err := ReadAddressTable(context.Background(), strings.NewReader(chart))
	require.NoError(t, err)
	assert.Equal(t, 2.0, table.Distance(1, 2))
	assert.Equal(t, 0.0, table.Distance(1, 1))
}

func TestReadAddressTableErrors(t *testing.T) {
	cases := map[string]struct {
		chart string
		want  error
	}{
		"asymmetric": {"Depot,0,3\nA,4,0", domain.ErrAsymmetricDistances},
		"missing":    {"Depot,0,,\nA,,0,\nB,1,1,0", ErrMissingDistance},
		"duplicate":  {"Depot,0,1\nDepot,1,0", domain.ErrDuplicateAddress},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadAddressTable(context.Background(), strings.NewReader(tc.chart))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}

	_, err := ReadAddressTable(context.Background(), strings.NewReader("Depot,0,x\nA,1,0"))
	assert.Error(t, err)

	_, err = ReadAddressTable(context.Background(), strings.NewReader("Depot,0,1,9\nA,1,0"))
	assert.Error(t, err, "extra non-blank column")
}

func TestCSVAddressTableFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "distances.csv")
	require.NoError(t, os.WriteFile(path, []byte("Depot,0,\nA,2.5,0\n"), 0o644))

	table, err := NewCSVAddressTable(path).LoadAddressTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2.5, table.Distance(0, 1))
}

func TestStaticTable(t *testing.T) {
	st, err := NewStaticTable(
		[]string{"HUB", "A", "B"},
		[]Pair{
			{From: "HUB", To: "A", Miles: 3},
			{From: "B", To: "HUB", Miles: 5},
			{From: "A", To: "B", Miles: 2},
		},
	)
	require.NoError(t, err)

	table, err := st.LoadAddressTable(context.Background())
	require.NoError(t, err)
	assert.Same(t, st.Table(), table)
	assert.Equal(t, 5.0, table.Distance(0, 2))
	assert.Equal(t, 2.0, table.Distance(2, 1))

	_, err = NewStaticTable([]string{"HUB", "A"}, []Pair{{From: "HUB", To: "Z", Miles: 1}})
	assert.True(t, errors.Is(err, domain.ErrUnknownAddress))

	_, err = NewStaticTable([]string{"HUB", "A"}, nil)
	assert.True(t, errors.Is(err, ErrMissingDistance))
}

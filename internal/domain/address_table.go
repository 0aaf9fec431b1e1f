package domain

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DepotIndex is the address table position of the depot.
const DepotIndex = 0

var (
	ErrEmptyAddressTable   = errors.New("address table is empty")
	ErrDuplicateAddress    = errors.New("duplicate address")
	ErrMatrixShape         = errors.New("distance matrix shape does not match addresses")
	ErrNegativeDistance    = errors.New("negative distance")
	ErrAsymmetricDistances = errors.New("distance matrix is not symmetric")
	ErrUnknownAddress      = errors.New("address not in address table")
)

// AddressTable pairs the ordered address list with its symmetric distance
// matrix. Row and column i both correspond to Address(i); the depot is row 0.
type AddressTable struct {
	addresses []string
	index     map[string]int
	dist      *mat.SymDense
}

// NewAddressTable validates and builds a table from a full square matrix.
// Addresses are normalized with NormalizeAddress.
func NewAddressTable(addresses []string, distances [][]float64) (*AddressTable, error) {
	n := len(addresses)
	if n == 0 {
		return nil, ErrEmptyAddressTable
	}
	if len(distances) != n {
		return nil, fmt.Errorf("new address table: %d rows for %d addresses: %w", len(distances), n, ErrMatrixShape)
	}

	index := make(map[string]int, n)
	normalized := make([]string, n)
	for i, a := range addresses {
		na := NormalizeAddress(a)
		if na == "" {
			return nil, fmt.Errorf("new address table: address at row %d is empty", i)
		}
		if prev, ok := index[na]; ok {
			return nil, fmt.Errorf("new address table: %q at rows %d and %d: %w", na, prev, i, ErrDuplicateAddress)
		}
		index[na] = i
		normalized[i] = na
	}

	data := make([]float64, 0, n*n)
	for i, row := range distances {
		if len(row) != n {
			return nil, fmt.Errorf("new address table: row %d has %d columns, want %d: %w", i, len(row), n, ErrMatrixShape)
		}
		for j, d := range row {
			if d < 0 || math.IsNaN(d) {
				return nil, fmt.Errorf("new address table: distance[%d][%d]=%v: %w", i, j, d, ErrNegativeDistance)
			}
		}
		data = append(data, row...)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if distances[i][j] != distances[j][i] {
				return nil, fmt.Errorf(
					"new address table: distance[%d][%d]=%v but distance[%d][%d]=%v: %w",
					i, j, distances[i][j], j, i, distances[j][i], ErrAsymmetricDistances,
				)
			}
		}
	}

	return &AddressTable{
		addresses: normalized,
		index:     index,
		dist:      mat.NewSymDense(n, data),
	}, nil
}

func (t *AddressTable) Len() int { return len(t.addresses) }

// Address returns the address at position i.
func (t *AddressTable) Address(i int) string { return t.addresses[i] }

// Addresses returns a copy of the ordered address list.
func (t *AddressTable) Addresses() []string {
	out := make([]string, len(t.addresses))
	copy(out, t.addresses)
	return out
}

// IndexOf finds the position of an address after normalization.
func (t *AddressTable) IndexOf(address string) (int, bool) {
	i, ok := t.index[NormalizeAddress(address)]
	return i, ok
}

// Distance returns the tabulated distance between positions i and j.
func (t *AddressTable) Distance(i, j int) float64 { return t.dist.At(i, j) }

package distance

import (
	"errors"
	"fmt"

	"depot-router/internal/domain"
)

var ErrMissingDistance = errors.New("missing distance")

// sparseMatrix collects distances that may arrive as a full matrix, a lower
// triangle, or individual pairs, and mirrors known cells before validation.
type sparseMatrix struct {
	addresses []string
	index     map[string]int
	cells     [][]float64
	known     [][]bool
}

func newSparseMatrix(addresses []string) (*sparseMatrix, error) {
	n := len(addresses)
	if n == 0 {
		return nil, domain.ErrEmptyAddressTable
	}

	m := &sparseMatrix{
		addresses: make([]string, n),
		index:     make(map[string]int, n),
		cells:     make([][]float64, n),
		known:     make([][]bool, n),
	}
	for i, a := range addresses {
		na := domain.NormalizeAddress(a)
		if _, ok := m.index[na]; ok {
			return nil, fmt.Errorf("%q: %w", na, domain.ErrDuplicateAddress)
		}
		m.addresses[i] = na
		m.index[na] = i
		m.cells[i] = make([]float64, n)
		m.known[i] = make([]bool, n)
	}
	return m, nil
}

func (m *sparseMatrix) set(i, j int, miles float64) {
	m.cells[i][j] = miles
	m.known[i][j] = true
}

func (m *sparseMatrix) setPair(from, to string, miles float64) error {
	i, ok := m.index[domain.NormalizeAddress(from)]
	if !ok {
		return fmt.Errorf("%q: %w", from, domain.ErrUnknownAddress)
	}
	j, ok := m.index[domain.NormalizeAddress(to)]
	if !ok {
		return fmt.Errorf("%q: %w", to, domain.ErrUnknownAddress)
	}
	m.set(i, j, miles)
	m.set(j, i, miles)
	return nil
}

// build mirrors blank cells from their transpose, zeroes a blank diagonal,
// and hands the full matrix to domain validation.
func (m *sparseMatrix) build() (*domain.AddressTable, error) {
	n := len(m.addresses)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if m.known[i][j] {
				continue
			}
			switch {
			case i == j:
				m.set(i, j, 0)
			case m.known[j][i]:
				m.set(i, j, m.cells[j][i])
			default:
				return nil, fmt.Errorf("%q -> %q: %w", m.addresses[i], m.addresses[j], ErrMissingDistance)
			}
		}
	}
	return domain.NewAddressTable(m.addresses, m.cells)
}

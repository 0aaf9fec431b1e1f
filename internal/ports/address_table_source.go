package ports

import (
	"context"
	"depot-router/internal/domain"
)

// Contract for retrieving the address list and its distance matrix.
type AddressTableSource interface {
	// Return the validated table; the depot must be the first address.
	LoadAddressTable(ctx context.Context) (*domain.AddressTable, error)
}

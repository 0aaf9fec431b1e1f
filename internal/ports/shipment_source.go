package ports

import (
	"context"
	"depot-router/internal/domain"
)

// Port: a boundary for retrieving Shipment records from a data source.
type ShipmentSource interface {
	// Retrieve every shipment for the run, fully populated, ordered by source position.
	ListShipments(ctx context.Context) ([]*domain.Shipment, error)
}

package services

import (
	"errors"

	"depot-router/internal/domain"
)

// Deliver simulates a vehicle's route over its manifest.
//
// Distinct manifest addresses are visited greedily by nearest neighbor from
// the depot. Each hop advances the vehicle clock and odometer and stamps
// every manifested shipment at that address as delivered. A final hop
// returns the vehicle to the depot.
//
// It does not attempt global route optimization.
func (d *Depot) Deliver(v *domain.Vehicle) (*domain.RoutePlan, error) {
	if v == nil {
		return nil, errors.New("deliver: vehicle must be non-nil")
	}

	byIndex := make(map[int][]int)
	candidates := []int{}
	for _, id := range v.ShipmentIDs() {
		i, err := d.addressIndex(id)
		if err != nil {
			return nil, err
		}
		if _, seen := byIndex[i]; !seen {
			candidates = append(candidates, i)
		}
		byIndex[i] = append(byIndex[i], id)
	}

	plan := &domain.RoutePlan{
		VehicleID: v.VehicleID,
		DepartAt:  v.DepartAt,
		Stops:     []domain.RouteStop{},
	}

	current := domain.DepotIndex
	for len(candidates) > 0 {
		next, _ := NearestLocation(d.table, current, candidates)
		candidates = removeFirst(candidates, next)

		miles := d.table.Distance(current, next)
		v.Travel(miles)

		for _, id := range byIndex[next] {
			if s, ok := d.shipments.Lookup(id); ok {
				s.MarkDelivered(v.Clock)
			}
		}

		plan.Stops = append(plan.Stops, domain.RouteStop{
			AddressIndex: next,
			Address:      d.table.Address(next),
			ArriveAt:     v.Clock,
			LegMiles:     miles,
			ShipmentIDs:  byIndex[next],
		})
		plan.TotalMiles += miles
		d.log.Debugw("hop", map[string]any{
			"vehicle":   v.VehicleID,
			"address":   d.table.Address(next),
			"miles":     miles,
			"arrive_at": v.Clock.Format("3:04:05 PM"),
			"shipments": len(byIndex[next]),
		})
		current = next
	}

	back := d.table.Distance(current, domain.DepotIndex)
	v.Travel(back)

	plan.ReturnAt = v.Clock
	plan.ReturnMiles = back
	plan.TotalMiles += back
	plan.TotalDuration = v.Clock.Sub(v.DepartAt)

	d.log.Debugf(
		"delivered vehicle=%d stops=%d miles=%.1f return_at=%s",
		v.VehicleID, len(plan.Stops), plan.TotalMiles, plan.ReturnAt.Format("3:04:05 PM"),
	)
	return plan, nil
}

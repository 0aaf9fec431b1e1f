package services

import (
	"errors"
	"fmt"

	"depot-router/internal/domain"
)

// Load fills a vehicle greedily from the pool by nearest-neighbor order and
// returns the ids left over.
//
// The candidate list holds one address index per working shipment (manifest
// first, then pool), so an address reached twice yields one shipment per
// visit. Already-manifested shipments are walked as part of the route but
// not loaded again. Loading stops when the vehicle is full or the working
// list runs out.
func (d *Depot) Load(v *domain.Vehicle, pool []int) ([]int, error) {
	if v == nil {
		return nil, errors.New("load: vehicle must be non-nil")
	}
	if len(pool) == 0 {
		return []int{}, nil
	}

	work := make([]int, 0, v.Len()+len(pool))
	work = append(work, v.ShipmentIDs()...)
	work = append(work, pool...)

	indexOf := make(map[int]int, len(work))
	candidates := make([]int, 0, len(work))
	for _, id := range work {
		i, err := d.addressIndex(id)
		if err != nil {
			return nil, fmt.Errorf("load vehicle %d: %w", v.VehicleID, err)
		}
		indexOf[id] = i
		candidates = append(candidates, i)
	}

	current := domain.DepotIndex
	for !v.Full() && len(work) > 0 {
		next, ok := NearestLocation(d.table, current, candidates)
		if !ok {
			break
		}
		candidates = removeFirst(candidates, next)

		for i, id := range work {
			if indexOf[id] != next {
				continue
			}
			if !v.Holds(id) {
				if err := v.Load(id); err != nil {
					return nil, fmt.Errorf("load: %w", err)
				}
				d.log.Debugf("load shipment=%d vehicle=%d address=%q", id, v.VehicleID, d.table.Address(next))
			}
			work = append(work[:i], work[i+1:]...)
			break
		}

		current = next
	}

	leftover := make([]int, 0, len(pool))
	for _, id := range pool {
		if !v.Holds(id) {
			leftover = append(leftover, id)
		}
	}

	d.unassigned = subtract(d.unassigned, v)
	return leftover, nil
}

func subtract(ids []int, v *domain.Vehicle) []int {
	out := ids[:0]
	for _, id := range ids {
		if !v.Holds(id) {
			out = append(out, id)
		}
	}
	return out
}

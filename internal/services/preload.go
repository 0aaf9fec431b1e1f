package services

import (
	"fmt"

	"depot-router/internal/domain"
)

// Preload assigns shipments to vehicles by fixed business rules before
// greedy loading, then consolidates same-address end-of-day shipments onto
// the vehicle already visiting that address.
//
// Rules are checked in order and the first match wins:
//  1. id in the together group -> together vehicle
//  2. restricted note -> restricted vehicle
//  3. delayed note -> delayed vehicle, which then departs at DelayedAvailableAt
func (d *Depot) Preload() error {
	together := make(map[int]struct{}, len(d.rules.TogetherIDs))
	for _, id := range d.rules.TogetherIDs {
		together[id] = struct{}{}
	}

	for _, id := range d.unassigned {
		s, ok := d.shipments.Lookup(id)
		if !ok {
			return fmt.Errorf("preload: shipment %d: %w", id, ErrShipmentNotFound)
		}

		var (
			vi     int
			reason string
		)
		switch {
		case contains(together, id):
			vi, reason = d.rules.TogetherVehicle, "together"
		case d.rules.restricted(s.Note):
			vi, reason = d.rules.RestrictedVehicle, "restricted"
		case d.rules.delayed(s.Note):
			vi, reason = d.rules.DelayedVehicle, "delayed"
		default:
			continue
		}

		v := d.vehicles[vi]
		if err := v.Load(id); err != nil {
			return fmt.Errorf("preload: %s rule: %w", reason, err)
		}
		if reason == "delayed" {
			v.SetDeparture(d.rules.DelayedAvailableAt)
		}
		d.log.Debugf("preload shipment=%d vehicle=%d rule=%s", id, v.VehicleID, reason)
	}

	d.consolidate()

	remaining := d.unassigned[:0]
	for _, id := range d.unassigned {
		if !d.assigned(id) {
			remaining = append(remaining, id)
		}
	}
	d.unassigned = remaining

	return nil
}

// consolidate puts unassigned end-of-day shipments on a vehicle that already
// carries a shipment to the same address. A full vehicle is skipped rather
// than overfilled.
func (d *Depot) consolidate() {
	for _, v := range d.vehicles {
		for _, loadedID := range v.ShipmentIDs() {
			loaded, ok := d.shipments.Lookup(loadedID)
			if !ok {
				continue
			}

			for _, id := range d.unassigned {
				if d.assigned(id) {
					continue
				}
				s, ok := d.shipments.Lookup(id)
				if !ok || !s.Deadline.EndOfDay || !sameAddress(s, loaded) {
					continue
				}

				if v.Full() {
					d.log.Warnf(
						"consolidation skipped shipment=%d vehicle=%d address=%q: vehicle full",
						id, v.VehicleID, s.Address,
					)
					continue
				}
				if err := v.Load(id); err != nil {
					continue
				}
				d.log.Debugf("preload shipment=%d vehicle=%d rule=same-address with=%d", id, v.VehicleID, loadedID)
			}
		}
	}
}

func sameAddress(a, b *domain.Shipment) bool {
	return domain.NormalizeAddress(a.Address) == domain.NormalizeAddress(b.Address)
}

func contains(set map[int]struct{}, id int) bool {
	_, ok := set[id]
	return ok
}

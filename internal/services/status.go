package services

import (
	"time"

	"depot-router/internal/domain"
)

type ShipmentStatus int

const (
	StatusAtHub ShipmentStatus = iota
	StatusEnRoute
	StatusDelivered
)

func (s ShipmentStatus) String() string {
	switch s {
	case StatusEnRoute:
		return "En Route"
	case StatusDelivered:
		return "Delivered"
	default:
		return "At the Hub"
	}
}

// StatusReport is a shipment's state as seen at a point in time.
// VehicleID is 0 when the shipment is on no manifest.
type StatusReport struct {
	Shipment    *domain.Shipment
	VehicleID   int
	Status      ShipmentStatus
	DeliveredAt *time.Time
}

// StatusAt reports where a shipment stood at time at. A shipment is at the
// hub until its vehicle departs, en route until its delivery stamp, and
// delivered afterwards.
func (d *Depot) StatusAt(id int, at time.Time) (StatusReport, bool) {
	s, ok := d.shipments.Lookup(id)
	if !ok {
		return StatusReport{}, false
	}

	r := StatusReport{Shipment: s, Status: StatusAtHub}
	v, ok := d.VehicleOf(id)
	if !ok {
		return r, true
	}
	r.VehicleID = v.VehicleID

	if !v.HasDepartedBy(at) {
		return r, true
	}
	if s.DeliveredAt == nil || at.Before(*s.DeliveredAt) {
		r.Status = StatusEnRoute
		return r, true
	}

	r.Status = StatusDelivered
	r.DeliveredAt = s.DeliveredAt
	return r, true
}

// StatusAll reports every shipment at time at, ordered by id.
func (d *Depot) StatusAll(at time.Time) []StatusReport {
	all := d.Shipments()
	out := make([]StatusReport, 0, len(all))
	for _, s := range all {
		if r, ok := d.StatusAt(s.ShipmentID, at); ok {
			out = append(out, r)
		}
	}
	return out
}

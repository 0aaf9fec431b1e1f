package services

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"depot-router/internal/domain"
	"depot-router/internal/keyedstore"
	"depot-router/internal/platform/logger"
)

var (
	ErrNoVehicles          = errors.New("depot has no vehicles")
	ErrDuplicateShipment   = errors.New("duplicate shipment id")
	ErrShipmentNotFound    = errors.New("shipment not found")
	ErrAlreadyAssigned     = errors.New("shipment already assigned to a vehicle")
	ErrVehicleOutOfRange   = errors.New("vehicle index out of range")
	ErrUnassignedShipments = errors.New("shipments left unassigned")
)

// PreloadRules are the fixed business rules applied before greedy loading.
// Vehicle fields are positions in the depot's vehicle list.
type PreloadRules struct {
	// Shipments that must travel on the same vehicle.
	TogetherIDs     []int
	TogetherVehicle int

	// Notes (exact match) that pin a shipment to one vehicle, e.g. a
	// vehicle restriction or a pending address correction.
	RestrictedNotes   []string
	RestrictedVehicle int

	// Notes starting with DelayedNotePrefix mark shipments that reach the
	// depot late; the delayed vehicle waits for them.
	DelayedNotePrefix  string
	DelayedVehicle     int
	DelayedAvailableAt time.Time
}

// DefaultPreloadRules reproduces the standard day: the six linked shipments
// on the first vehicle, truck-2-only and wrong-address shipments on the
// second, delayed shipments on the third leaving at 9:05 AM.
func DefaultPreloadRules(clock domain.DayClock) PreloadRules {
	return PreloadRules{
		TogetherIDs:        []int{13, 14, 15, 16, 19, 20},
		TogetherVehicle:    0,
		RestrictedNotes:    []string{"Can only be on truck 2", "Wrong address listed"},
		RestrictedVehicle:  1,
		DelayedNotePrefix:  "Delayed",
		DelayedVehicle:     2,
		DelayedAvailableAt: clock.At(9, 5),
	}
}

func (r PreloadRules) restricted(note string) bool {
	note = strings.TrimSpace(note)
	for _, n := range r.RestrictedNotes {
		if note == n {
			return true
		}
	}
	return false
}

func (r PreloadRules) delayed(note string) bool {
	return r.DelayedNotePrefix != "" && strings.HasPrefix(strings.TrimSpace(note), r.DelayedNotePrefix)
}

// Depot owns the address table, the master shipment store, and the fleet.
// Vehicle manifests hold shipment ids that resolve through the master store,
// so every view of a shipment sees the same record.
type Depot struct {
	table      *domain.AddressTable
	shipments  *keyedstore.Store[*domain.Shipment]
	unassigned []int
	vehicles   []*domain.Vehicle
	rules      PreloadRules
	log        logger.Logger
}

func NewDepot(
	table *domain.AddressTable,
	shipments []*domain.Shipment,
	vehicles []*domain.Vehicle,
	rules PreloadRules,
	log logger.Logger,
	opts ...keyedstore.Option,
) (*Depot, error) {
	if table == nil {
		return nil, errors.New("new depot: address table must be non-nil")
	}
	if len(vehicles) == 0 {
		return nil, ErrNoVehicles
	}
	for _, vi := range []int{rules.TogetherVehicle, rules.RestrictedVehicle, rules.DelayedVehicle} {
		if vi < 0 || vi >= len(vehicles) {
			return nil, fmt.Errorf("new depot: preload vehicle %d: %w", vi, ErrVehicleOutOfRange)
		}
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	// The store never grows, so size it to the shipment count up front.
	store := keyedstore.New[*domain.Shipment](len(shipments), opts...)
	unassigned := make([]int, 0, len(shipments))
	for _, s := range shipments {
		if s == nil {
			return nil, errors.New("new depot: nil shipment")
		}
		if store.Contains(s.ShipmentID) {
			return nil, fmt.Errorf("new depot: shipment %d: %w", s.ShipmentID, ErrDuplicateShipment)
		}
		store.Insert(s.ShipmentID, s)
		unassigned = append(unassigned, s.ShipmentID)
	}

	return &Depot{
		table:      table,
		shipments:  store,
		unassigned: unassigned,
		vehicles:   vehicles,
		rules:      rules,
		log:        log,
	}, nil
}

func (d *Depot) Table() *domain.AddressTable { return d.table }

// Vehicles returns the fleet in configuration order.
func (d *Depot) Vehicles() []*domain.Vehicle { return d.vehicles }

// Vehicle returns the vehicle at position i.
func (d *Depot) Vehicle(i int) (*domain.Vehicle, bool) {
	if i < 0 || i >= len(d.vehicles) {
		return nil, false
	}
	return d.vehicles[i], true
}

// Unassigned returns a copy of the ids not yet on any manifest.
func (d *Depot) Unassigned() []int { return slices.Clone(d.unassigned) }

// Shipment looks a shipment up in the master store.
func (d *Depot) Shipment(id int) (*domain.Shipment, bool) {
	return d.shipments.Lookup(id)
}

// Shipments returns every shipment ordered by id.
func (d *Depot) Shipments() []*domain.Shipment {
	return sortedByID(d.shipments.Values())
}

// Manifest resolves a vehicle's manifest through the master store, ordered by id.
func (d *Depot) Manifest(v *domain.Vehicle) []*domain.Shipment {
	out := make([]*domain.Shipment, 0, v.Len())
	for _, id := range v.ShipmentIDs() {
		if s, ok := d.shipments.Lookup(id); ok {
			out = append(out, s)
		}
	}
	return sortedByID(out)
}

// VehicleOf returns the vehicle holding the shipment.
func (d *Depot) VehicleOf(id int) (*domain.Vehicle, bool) {
	for _, v := range d.vehicles {
		if v.Holds(id) {
			return v, true
		}
	}
	return nil, false
}

func (d *Depot) assigned(id int) bool {
	_, ok := d.VehicleOf(id)
	return ok
}

// CorrectShipment replaces a shipment's destination in place and re-keys it
// under the same id. It must run before the shipment is assigned.
func (d *Depot) CorrectShipment(id int, address, city string, postalCode int) error {
	s, ok := d.shipments.Lookup(id)
	if !ok {
		return fmt.Errorf("correct shipment %d: %w", id, ErrShipmentNotFound)
	}
	if d.assigned(id) {
		return fmt.Errorf("correct shipment %d: %w", id, ErrAlreadyAssigned)
	}
	if _, ok := d.table.IndexOf(address); !ok {
		return fmt.Errorf("correct shipment %d: %q: %w", id, address, domain.ErrUnknownAddress)
	}

	s.Correct(address, city, postalCode)
	d.shipments.Remove(id)
	d.shipments.Insert(id, s)

	d.log.Infof("corrected shipment=%d address=%q city=%q postal=%d", id, s.Address, s.City, s.PostalCode)
	return nil
}

// TotalMiles sums the odometers of every vehicle.
func (d *Depot) TotalMiles() float64 {
	total := 0.0
	for _, v := range d.vehicles {
		total += v.Miles
	}
	return total
}

// Late returns shipments delivered after their deadline, ordered by id.
func (d *Depot) Late() []*domain.Shipment {
	var out []*domain.Shipment
	for _, s := range d.Shipments() {
		if s.Late() {
			out = append(out, s)
		}
	}
	return out
}

func (d *Depot) addressIndex(id int) (int, error) {
	s, ok := d.shipments.Lookup(id)
	if !ok {
		return 0, fmt.Errorf("shipment %d: %w", id, ErrShipmentNotFound)
	}
	i, ok := d.table.IndexOf(s.Address)
	if !ok {
		return 0, fmt.Errorf("shipment %d address %q: %w", id, s.Address, domain.ErrUnknownAddress)
	}
	return i, nil
}

func sortedByID(in []*domain.Shipment) []*domain.Shipment {
	slices.SortFunc(in, func(a, b *domain.Shipment) int { return a.ShipmentID - b.ShipmentID })
	return in
}

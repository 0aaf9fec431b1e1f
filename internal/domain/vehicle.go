package domain

import (
	"errors"
	"fmt"
	"math"
	"time"

	"depot-router/internal/keyedstore"
)

const (
	DefaultCapacity = 16
	DefaultSpeedMPH = 18.0
)

var ErrVehicleFull = errors.New("vehicle is at full capacity")

// Delivery vehicle holding a manifest of shipment ids.
// The manifest maps shipment id to load sequence; shipment records themselves
// live in the depot's master store.
type Vehicle struct {
	VehicleID int
	Capacity  int
	SpeedMPH  float64
	DepartAt  time.Time
	Clock     time.Time
	Miles     float64
	Manifest  *keyedstore.Store[int]
	loaded    int
}

func NewVehicle(id int, capacity int, speedMPH float64, departAt time.Time, opts ...keyedstore.Option) *Vehicle {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if speedMPH <= 0 {
		speedMPH = DefaultSpeedMPH
	}

	return &Vehicle{
		VehicleID: id,
		Capacity:  capacity,
		SpeedMPH:  speedMPH,
		DepartAt:  departAt,
		Clock:     departAt,
		Manifest:  keyedstore.New[int](capacity*2, opts...),
	}
}

// Load adds a shipment id to the manifest.
func (v *Vehicle) Load(shipmentID int) error {
	if v.Full() {
		return fmt.Errorf("load vehicle %d shipment %d: %w (capacity=%d)", v.VehicleID, shipmentID, ErrVehicleFull, v.Capacity)
	}
	v.loaded++
	v.Manifest.Insert(shipmentID, v.loaded)
	return nil
}

func (v *Vehicle) Holds(shipmentID int) bool { return v.Manifest.Contains(shipmentID) }

func (v *Vehicle) Len() int { return v.Manifest.Len() }

func (v *Vehicle) Full() bool { return v.Manifest.Len() >= v.Capacity }

// ShipmentIDs returns manifest ids in store order.
func (v *Vehicle) ShipmentIDs() []int { return v.Manifest.Keys() }

// SetDeparture moves both the departure time and the running clock.
func (v *Vehicle) SetDeparture(t time.Time) {
	v.DepartAt = t
	v.Clock = t
}

// HasDepartedBy reports whether the vehicle left the depot strictly before t.
func (v *Vehicle) HasDepartedBy(t time.Time) bool { return v.DepartAt.Before(t) }

// TravelTime converts a distance into elapsed time at the vehicle's speed.
func (v *Vehicle) TravelTime(miles float64) time.Duration {
	return time.Duration(math.Round(miles * float64(time.Hour) / v.SpeedMPH))
}

// Travel drives the given distance, advancing the clock and odometer.
// Negative distances are ignored so the clock never runs backwards.
func (v *Vehicle) Travel(miles float64) time.Duration {
	if miles <= 0 {
		return 0
	}
	d := v.TravelTime(miles)
	v.Clock = v.Clock.Add(d)
	v.Miles += miles
	return d
}

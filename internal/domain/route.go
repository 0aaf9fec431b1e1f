package domain

import "time"

// Represents a single stop in a simulated delivery route.
// A RouteStop corresponds to arriving at an address at the vehicle's clock
// and delivering every manifested shipment addressed there.
type RouteStop struct {
	AddressIndex int
	Address      string
	ArriveAt     time.Time
	LegMiles     float64
	ShipmentIDs  []int
}

// Represents the simulated route of one vehicle: depot, stops in visiting
// order, and the return hop to the depot.
type RoutePlan struct {
	VehicleID     int
	DepartAt      time.Time
	Stops         []RouteStop
	ReturnAt      time.Time
	ReturnMiles   float64
	TotalMiles    float64
	TotalDuration time.Duration
}

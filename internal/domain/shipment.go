package domain

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Deadline is the time of day by which a shipment must arrive.
// The end-of-day sentinel sets EndOfDay and carries the configured
// end-of-day instant in At.
type Deadline struct {
	At       time.Time
	EndOfDay bool
}

// Represents a single deliverable item.
// A Shipment is created during ingestion, may have its destination corrected
// once before dispatch, and is stamped with a delivery time during route
// simulation. It is never destroyed during a run.
type Shipment struct {
	ShipmentID  int
	Address     string
	City        string
	PostalCode  int
	Deadline    Deadline
	WeightKg    float64
	Note        string
	DeliveredAt *time.Time
}

// Delivered reports whether the shipment has a delivery stamp.
func (s *Shipment) Delivered() bool { return s.DeliveredAt != nil }

// MarkDelivered stamps the shipment as delivered at t.
func (s *Shipment) MarkDelivered(t time.Time) {
	s.DeliveredAt = &t
}

// Late reports whether the shipment was delivered after its deadline.
func (s *Shipment) Late() bool {
	return s.DeliveredAt != nil && s.DeliveredAt.After(s.Deadline.At)
}

// Correct replaces the destination fields in place.
func (s *Shipment) Correct(address, city string, postalCode int) {
	s.Address = NormalizeAddress(address)
	s.City = strings.TrimSpace(city)
	s.PostalCode = postalCode
}

// NormalizeAddress makes address strings from different sources comparable:
// Unicode NFC with runs of whitespace collapsed to a single space.
func NormalizeAddress(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

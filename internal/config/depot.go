package config

import (
	"fmt"
	"time"

	"depot-router/internal/domain"
	"depot-router/internal/keyedstore"
)

const (
	HashIdentity = "identity"
	HashXX       = "xxhash"

	referenceDateLayout = "2006-01-02"
	// DefaultReferenceDate pins the operating day so runs never depend on the
	// wall clock. Only times of day are reported.
	DefaultReferenceDate = "2026-01-05"
)

// DepotConfig describes the operating day and the fleet.
type DepotConfig struct {
	// ReferenceDate is the operating day as YYYY-MM-DD (UTC).
	ReferenceDate string  `json:"reference_date"`
	DepartAt      string  `json:"depart_at"`
	EndOfDay      string  `json:"end_of_day"`
	SpeedMPH      float64 `json:"speed_mph"`
	Capacity      int     `json:"capacity"`
	Vehicles      int     `json:"vehicles"`
	// StoreHash picks the keyed store hasher: "identity" or "xxhash".
	StoreHash string `json:"store_hash"`
}

func (c *DepotConfig) SetDefaults() {
	if c.ReferenceDate == "" {
		c.ReferenceDate = DefaultReferenceDate
	}
	if c.DepartAt == "" {
		c.DepartAt = "8:00 AM"
	}
	if c.EndOfDay == "" {
		c.EndOfDay = "11:59 PM"
	}
	if c.SpeedMPH == 0 {
		c.SpeedMPH = domain.DefaultSpeedMPH
	}
	if c.Capacity == 0 {
		c.Capacity = domain.DefaultCapacity
	}
	if c.Vehicles == 0 {
		c.Vehicles = 3
	}
	if c.StoreHash == "" {
		c.StoreHash = HashIdentity
	}
}

func (c DepotConfig) Validate() error {
	if c.SpeedMPH <= 0 {
		return fmt.Errorf("speed_mph must be positive, got %v", c.SpeedMPH)
	}
	if c.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive, got %d", c.Capacity)
	}
	if c.Vehicles <= 0 {
		return fmt.Errorf("vehicles must be positive, got %d", c.Vehicles)
	}
	if c.StoreHash != HashIdentity && c.StoreHash != HashXX {
		return fmt.Errorf("unknown store_hash %q", c.StoreHash)
	}

	clock, err := c.Clock()
	if err != nil {
		return err
	}
	if _, err := clock.Parse(c.DepartAt); err != nil {
		return fmt.Errorf("depart_at: %w", err)
	}
	return nil
}

// Clock builds the operating day.
func (c DepotConfig) Clock() (domain.DayClock, error) {
	ref, err := time.ParseInLocation(referenceDateLayout, c.ReferenceDate, time.UTC)
	if err != nil {
		return domain.DayClock{}, fmt.Errorf("reference_date: %w", err)
	}

	// Parse the end of day against a provisional clock for its hour and minute.
	eod, err := domain.NewDayClock(ref, 0, 0).Parse(c.EndOfDay)
	if err != nil {
		return domain.DayClock{}, fmt.Errorf("end_of_day: %w", err)
	}
	return domain.NewDayClock(ref, eod.Hour(), eod.Minute()), nil
}

// StoreOptions returns the keyed store options for the configured hasher.
func (c DepotConfig) StoreOptions() []keyedstore.Option {
	if c.StoreHash == HashXX {
		return []keyedstore.Option{keyedstore.WithHasher(keyedstore.XXHash)}
	}
	return nil
}

// Fleet builds the vehicles, numbered from 1, leaving at DepartAt.
func (c DepotConfig) Fleet(clock domain.DayClock) ([]*domain.Vehicle, error) {
	departAt, err := clock.Parse(c.DepartAt)
	if err != nil {
		return nil, fmt.Errorf("depart_at: %w", err)
	}

	opts := c.StoreOptions()
	fleet := make([]*domain.Vehicle, c.Vehicles)
	for i := range fleet {
		fleet[i] = domain.NewVehicle(i+1, c.Capacity, c.SpeedMPH, departAt, opts...)
	}
	return fleet, nil
}

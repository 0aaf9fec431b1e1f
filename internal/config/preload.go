package config

import (
	"fmt"

	"depot-router/internal/domain"
	"depot-router/internal/services"
)

// PreloadConfig holds the business rules applied before greedy loading.
// Vehicles are numbered from 1.
type PreloadConfig struct {
	TogetherIDs        []int    `json:"together_ids"`
	TogetherVehicle    int      `json:"together_vehicle"`
	RestrictedNotes    []string `json:"restricted_notes"`
	RestrictedVehicle  int      `json:"restricted_vehicle"`
	DelayedNotePrefix  string   `json:"delayed_note_prefix"`
	DelayedVehicle     int      `json:"delayed_vehicle"`
	DelayedAvailableAt string   `json:"delayed_available_at"`
}

func (c *PreloadConfig) SetDefaults() {
	if c.TogetherIDs == nil {
		c.TogetherIDs = []int{13, 14, 15, 16, 19, 20}
	}
	if c.TogetherVehicle == 0 {
		c.TogetherVehicle = 1
	}
	if c.RestrictedNotes == nil {
		c.RestrictedNotes = []string{"Can only be on truck 2", "Wrong address listed"}
	}
	if c.RestrictedVehicle == 0 {
		c.RestrictedVehicle = 2
	}
	if c.DelayedNotePrefix == "" {
		c.DelayedNotePrefix = "Delayed"
	}
	if c.DelayedVehicle == 0 {
		c.DelayedVehicle = 3
	}
	if c.DelayedAvailableAt == "" {
		c.DelayedAvailableAt = "9:05 AM"
	}
}

func (c PreloadConfig) Validate(vehicles int) error {
	for name, n := range map[string]int{
		"together_vehicle":   c.TogetherVehicle,
		"restricted_vehicle": c.RestrictedVehicle,
		"delayed_vehicle":    c.DelayedVehicle,
	} {
		if n < 1 || n > vehicles {
			return fmt.Errorf("%s %d outside 1..%d", name, n, vehicles)
		}
	}
	return nil
}

// Rules converts the configuration into preload rules on clock.
func (c PreloadConfig) Rules(clock domain.DayClock) (services.PreloadRules, error) {
	at, err := clock.Parse(c.DelayedAvailableAt)
	if err != nil {
		return services.PreloadRules{}, fmt.Errorf("delayed_available_at: %w", err)
	}

	return services.PreloadRules{
		TogetherIDs:        c.TogetherIDs,
		TogetherVehicle:    c.TogetherVehicle - 1,
		RestrictedNotes:    c.RestrictedNotes,
		RestrictedVehicle:  c.RestrictedVehicle - 1,
		DelayedNotePrefix:  c.DelayedNotePrefix,
		DelayedVehicle:     c.DelayedVehicle - 1,
		DelayedAvailableAt: at,
	}, nil
}

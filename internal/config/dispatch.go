package config

import (
	"fmt"

	"depot-router/internal/services"
)

type CorrectionConfig struct {
	ShipmentID int    `json:"shipment_id"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode int    `json:"postal_code"`
}

// DispatchConfig fixes corrections, loading order and departure waves.
// Vehicles are numbered from 1.
type DispatchConfig struct {
	Corrections []CorrectionConfig `json:"corrections"`
	LoadOrder   []int              `json:"load_order"`
	FirstWave   []int              `json:"first_wave"`
	SecondWave  []int              `json:"second_wave"`
}

func (c *DispatchConfig) SetDefaults() {
	def := services.DefaultDispatchPlan()
	if c.Corrections == nil {
		for _, corr := range def.Corrections {
			c.Corrections = append(c.Corrections, CorrectionConfig(corr))
		}
	}
	if c.LoadOrder == nil {
		c.LoadOrder = oneBased(def.LoadOrder)
	}
	if c.FirstWave == nil && c.SecondWave == nil {
		c.FirstWave = oneBased(def.FirstWave)
		c.SecondWave = oneBased(def.SecondWave)
	}
}

func (c DispatchConfig) Validate(vehicles int) error {
	for _, list := range [][]int{c.LoadOrder, c.FirstWave, c.SecondWave} {
		for _, n := range list {
			if n < 1 || n > vehicles {
				return fmt.Errorf("vehicle %d outside 1..%d", n, vehicles)
			}
		}
	}
	for _, corr := range c.Corrections {
		if corr.ShipmentID <= 0 || corr.Address == "" {
			return fmt.Errorf("correction needs shipment_id and address: %+v", corr)
		}
	}
	return nil
}

// Plan converts the configuration into a dispatch plan.
func (c DispatchConfig) Plan() services.DispatchPlan {
	plan := services.DispatchPlan{
		LoadOrder:  zeroBased(c.LoadOrder),
		FirstWave:  zeroBased(c.FirstWave),
		SecondWave: zeroBased(c.SecondWave),
	}
	for _, corr := range c.Corrections {
		plan.Corrections = append(plan.Corrections, services.Correction(corr))
	}
	return plan
}

func oneBased(in []int) []int {
	out := make([]int, len(in))
	for i, n := range in {
		out[i] = n + 1
	}
	return out
}

func zeroBased(in []int) []int {
	out := make([]int, len(in))
	for i, n := range in {
		out[i] = n - 1
	}
	return out
}

package config

import "fmt"

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// DataConfig locates the shipment list and the distance chart.
type DataConfig struct {
	// Source is "csv" (files below) or "postgres" (DatabaseURL).
	Source        string `json:"source"`
	ShipmentsPath string `json:"shipments_path"`
	DistancesPath string `json:"distances_path"`
	// DatabaseURL falls back to the DATABASE_URL environment variable.
	DatabaseURL string `json:"database_url"`
}

func (c *DataConfig) SetDefaults() {
	if c.Source == "" {
		c.Source = SourceCSV
	}
	if c.ShipmentsPath == "" {
		c.ShipmentsPath = "data/shipments.csv"
	}
	if c.DistancesPath == "" {
		c.DistancesPath = "data/distances.csv"
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = Get("DATABASE_URL", "")
	}
}

func (c DataConfig) Validate() error {
	switch c.Source {
	case SourceCSV:
		return nil
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("database_url (or DATABASE_URL) is required for source %q", c.Source)
		}
		return nil
	default:
		return fmt.Errorf("unknown source %q", c.Source)
	}
}

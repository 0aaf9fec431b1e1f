package main

import (
	"io"

	"github.com/spf13/cobra"

	"depot-router/internal/report"
)

// rootOptions holds global flags for all commands.
type rootOptions struct {
	ConfigPath    string
	Format        string
	ShipmentsPath string
	DistancesPath string

	out    io.Writer
	errOut io.Writer
}

func newRootCommand(out, errOut io.Writer) *cobra.Command {
	opts := &rootOptions{out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:   "router",
		Short: "Plan and simulate a day of depot deliveries",
		Long: `router loads the day's shipments and the distance chart, assigns shipments
to vehicles, simulates each vehicle's nearest-neighbor route, and reports
delivery times, shipment status and mileage.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := report.NewWriter(io.Discard, opts.Format)
			return err
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (yaml or json)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", report.FormatText, "output format (text|json)")
	cmd.PersistentFlags().StringVar(&opts.ShipmentsPath, "shipments", "", "shipment CSV, overrides config")
	cmd.PersistentFlags().StringVar(&opts.DistancesPath, "distances", "", "distance chart CSV, overrides config")

	cmd.AddCommand(newRunCommand(opts))
	cmd.AddCommand(newLookupCommand(opts))
	cmd.AddCommand(newStatusCommand(opts))
	cmd.AddCommand(newMileageCommand(opts))

	return cmd
}

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"depot-router/internal/report"
)

func newRunCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Dispatch the day and print routes, shipments and mileage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := dispatch(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return a.writer.Run(report.NewRun(a.depot, a.result, a.clock.EndOfDay()))
		},
	}
}

func newLookupCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <shipment-id>",
		Short: "Show one shipment as of the end of the day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			a, err := dispatch(cmd.Context(), opts)
			if err != nil {
				return err
			}
			r, ok := a.depot.StatusAt(id, a.clock.EndOfDay())
			if !ok {
				return fmt.Errorf("shipment %d not found", id)
			}
			return a.writer.Shipment(report.NewShipment(r))
		},
	}
}

func newStatusCommand(opts *rootOptions) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "status [shipment-id]",
		Short: "Show shipment status at a time of day, grouped by vehicle",
		Long: `Show where shipments stood at a time of day: at the hub until their vehicle
departs, en route until delivered, delivered afterwards.

Example:
  router status --at "10:30 AM"
  router status --at "9:00 AM" 6`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ids []int
			if len(args) == 1 {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			a, err := dispatch(cmd.Context(), opts)
			if err != nil {
				return err
			}

			when := a.clock.EndOfDay()
			if at != "" {
				if when, err = a.clock.Parse(at); err != nil {
					return err
				}
			}

			view := report.NewStatus(a.depot, when, ids...)
			if len(ids) == 1 && len(view.Vehicles) == 0 && len(view.Unassigned) == 0 {
				return fmt.Errorf("shipment %d not found", ids[0])
			}
			return a.writer.Status(view)
		},
	}

	cmd.Flags().StringVar(&at, "at", "", `time of day as "H:MM AM|PM" (default end of day)`)
	return cmd
}

func newMileageCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mileage",
		Short: "Show miles driven per vehicle and in total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := dispatch(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return a.writer.Mileage(report.NewMileage(a.depot))
		},
	}
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid shipment id %q", s)
	}
	return id, nil
}


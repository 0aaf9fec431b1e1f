package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Writer renders views as aligned text tables or indented JSON.
type Writer struct {
	out    io.Writer
	format string
}

func NewWriter(out io.Writer, format string) (*Writer, error) {
	switch format {
	case "", FormatText:
		format = FormatText
	case FormatJSON:
	default:
		return nil, fmt.Errorf("unknown output format %q (want text or json)", format)
	}
	return &Writer{out: out, format: format}, nil
}

func (w *Writer) writeJSON(v any) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (w *Writer) table() *tabwriter.Writer {
	return tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
}

func (w *Writer) Run(v RunView) error {
	if w.format == FormatJSON {
		return w.writeJSON(v)
	}

	tw := w.table()
	fmt.Fprintf(tw, "Run %s\n\n", v.RunID)
	for _, r := range v.Routes {
		fmt.Fprintf(tw, "Vehicle %d\tdeparts %s\treturns %s\t%.1f mi\n", r.VehicleID, r.DepartAt, r.ReturnAt, r.Miles)
		for _, s := range r.Stops {
			fmt.Fprintf(tw, "  %s\t%s\t%.1f mi\t%s\n", s.ArriveAt, s.Address, s.LegMiles, joinIDs(s.ShipmentIDs))
		}
	}
	fmt.Fprintln(tw)
	writeShipments(tw, v.Shipments)
	fmt.Fprintf(tw, "\nTotal mileage: %.1f\n", v.TotalMiles)
	if len(v.Late) > 0 {
		fmt.Fprintf(tw, "Late: %s\n", joinIDs(v.Late))
	}
	return tw.Flush()
}

func (w *Writer) Shipment(v ShipmentView) error {
	if w.format == FormatJSON {
		return w.writeJSON(v)
	}

	tw := w.table()
	writeShipments(tw, []ShipmentView{v})
	return tw.Flush()
}

func (w *Writer) Status(v StatusView) error {
	if w.format == FormatJSON {
		return w.writeJSON(v)
	}

	tw := w.table()
	fmt.Fprintf(tw, "Status at %s\n", v.At)
	for _, veh := range v.Vehicles {
		fmt.Fprintf(tw, "\nVehicle %d (departs %s)\n", veh.VehicleID, veh.DepartAt)
		writeShipments(tw, veh.Shipments)
	}
	if len(v.Unassigned) > 0 {
		fmt.Fprintf(tw, "\nUnassigned\n")
		writeShipments(tw, v.Unassigned)
	}
	return tw.Flush()
}

func (w *Writer) Mileage(v MileageView) error {
	if w.format == FormatJSON {
		return w.writeJSON(v)
	}

	tw := w.table()
	for _, veh := range v.Vehicles {
		fmt.Fprintf(tw, "Vehicle %d\t%.1f mi\n", veh.VehicleID, veh.Miles)
	}
	fmt.Fprintf(tw, "Total\t%.1f mi\n", v.TotalMiles)
	return tw.Flush()
}

func writeShipments(tw io.Writer, shipments []ShipmentView) {
	fmt.Fprintln(tw, "ID\tAddress\tCity\tPostal\tDeadline\tWeight\tStatus\tDelivered\t")
	for _, s := range shipments {
		delivered := s.DeliveredAt
		if s.Late {
			delivered += " (late)"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%g\t%s\t%s\t\n",
			s.ShipmentID, s.Address, s.City, s.PostalCode, s.Deadline, s.WeightKg, s.Status, delivered)
	}
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ",")
}

package report

import (
	"time"

	"depot-router/internal/domain"
	"depot-router/internal/services"
)

const clockLayout = "3:04 PM"

type ShipmentView struct {
	ShipmentID  int     `json:"shipment_id"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	PostalCode  int     `json:"postal_code"`
	Deadline    string  `json:"deadline"`
	WeightKg    float64 `json:"weight_kg"`
	Note        string  `json:"note,omitempty"`
	VehicleID   int     `json:"vehicle_id,omitempty"`
	Status      string  `json:"status"`
	DeliveredAt string  `json:"delivered_at,omitempty"`
	Late        bool    `json:"late"`
}

type StopView struct {
	Address     string  `json:"address"`
	ArriveAt    string  `json:"arrive_at"`
	LegMiles    float64 `json:"leg_miles"`
	ShipmentIDs []int   `json:"shipment_ids"`
}

type RouteView struct {
	VehicleID int        `json:"vehicle_id"`
	DepartAt  string     `json:"depart_at"`
	ReturnAt  string     `json:"return_at"`
	Miles     float64    `json:"miles"`
	Stops     []StopView `json:"stops"`
}

type RunView struct {
	RunID      string         `json:"run_id"`
	Routes     []RouteView    `json:"routes"`
	Shipments  []ShipmentView `json:"shipments"`
	TotalMiles float64        `json:"total_miles"`
	Late       []int          `json:"late"`
}

type VehicleStatusView struct {
	VehicleID int            `json:"vehicle_id"`
	DepartAt  string         `json:"depart_at"`
	Shipments []ShipmentView `json:"shipments"`
}

type StatusView struct {
	At       string              `json:"at"`
	Vehicles []VehicleStatusView `json:"vehicles"`
	// Shipments on no manifest.
	Unassigned []ShipmentView `json:"unassigned,omitempty"`
}

type VehicleMilesView struct {
	VehicleID int     `json:"vehicle_id"`
	Miles     float64 `json:"miles"`
}

type MileageView struct {
	Vehicles   []VehicleMilesView `json:"vehicles"`
	TotalMiles float64            `json:"total_miles"`
}

// Clock renders a time of day the way the input files spell it.
func Clock(t time.Time) string { return t.Format(clockLayout) }

// Deadline renders a deadline, spelling out the end-of-day sentinel.
func Deadline(d domain.Deadline) string {
	if d.EndOfDay {
		return "End of Day"
	}
	return Clock(d.At)
}

// NewShipment builds the view of a status report.
func NewShipment(r services.StatusReport) ShipmentView {
	s := r.Shipment
	v := ShipmentView{
		ShipmentID: s.ShipmentID,
		Address:    s.Address,
		City:       s.City,
		PostalCode: s.PostalCode,
		Deadline:   Deadline(s.Deadline),
		WeightKg:   s.WeightKg,
		Note:       s.Note,
		VehicleID:  r.VehicleID,
		Status:     r.Status.String(),
	}
	if r.DeliveredAt != nil {
		v.DeliveredAt = Clock(*r.DeliveredAt)
		v.Late = s.Late()
	}
	return v
}

func newRoute(p *domain.RoutePlan) RouteView {
	rv := RouteView{
		VehicleID: p.VehicleID,
		DepartAt:  Clock(p.DepartAt),
		ReturnAt:  Clock(p.ReturnAt),
		Miles:     p.TotalMiles,
		Stops:     make([]StopView, 0, len(p.Stops)),
	}
	for _, s := range p.Stops {
		rv.Stops = append(rv.Stops, StopView{
			Address:     s.Address,
			ArriveAt:    Clock(s.ArriveAt),
			LegMiles:    s.LegMiles,
			ShipmentIDs: s.ShipmentIDs,
		})
	}
	return rv
}

// NewRun summarizes a finished dispatch: routes, every shipment as of the
// end of day, and the late list.
func NewRun(d *services.Depot, res *services.DispatchResult, endOfDay time.Time) RunView {
	v := RunView{
		RunID:      res.RunID,
		Routes:     make([]RouteView, 0, len(res.Routes)),
		TotalMiles: res.TotalMiles,
		Late:       []int{},
	}
	for _, p := range res.Routes {
		v.Routes = append(v.Routes, newRoute(p))
	}
	for _, r := range d.StatusAll(endOfDay) {
		v.Shipments = append(v.Shipments, NewShipment(r))
	}
	for _, s := range d.Late() {
		v.Late = append(v.Late, s.ShipmentID)
	}
	return v
}

// NewStatus groups shipment states at time at by vehicle. With ids, only
// those shipments are included; unknown ids are skipped.
func NewStatus(d *services.Depot, at time.Time, ids ...int) StatusView {
	var reports []services.StatusReport
	if len(ids) == 0 {
		reports = d.StatusAll(at)
	} else {
		for _, id := range ids {
			if r, ok := d.StatusAt(id, at); ok {
				reports = append(reports, r)
			}
		}
	}

	view := StatusView{At: Clock(at)}
	byVehicle := make(map[int][]ShipmentView)
	for _, r := range reports {
		if r.VehicleID == 0 {
			view.Unassigned = append(view.Unassigned, NewShipment(r))
			continue
		}
		byVehicle[r.VehicleID] = append(byVehicle[r.VehicleID], NewShipment(r))
	}

	for _, veh := range d.Vehicles() {
		shipments, ok := byVehicle[veh.VehicleID]
		if !ok {
			continue
		}
		view.Vehicles = append(view.Vehicles, VehicleStatusView{
			VehicleID: veh.VehicleID,
			DepartAt:  Clock(veh.DepartAt),
			Shipments: shipments,
		})
	}
	return view
}

func NewMileage(d *services.Depot) MileageView {
	v := MileageView{TotalMiles: d.TotalMiles()}
	for _, veh := range d.Vehicles() {
		v.Vehicles = append(v.Vehicles, VehicleMilesView{VehicleID: veh.VehicleID, Miles: veh.Miles})
	}
	return v
}

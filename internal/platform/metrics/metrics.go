package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"depot-router/internal/domain"
)

// Recorder receives the outcome of each simulated route.
type Recorder interface {
	// RecordRoute is called once per delivered vehicle with the shipments it
	// carried, already stamped.
	RecordRoute(plan *domain.RoutePlan, delivered []*domain.Shipment) error
}

// NopRecorder implements Recorder with no-op methods.
type NopRecorder struct{}

func (NopRecorder) RecordRoute(*domain.RoutePlan, []*domain.Shipment) error { return nil }

// PromRecorder records route results as Prometheus metrics on its own registry.
type PromRecorder struct {
	registry  *prometheus.Registry
	miles     *prometheus.GaugeVec
	duration  *prometheus.GaugeVec
	delivered *prometheus.CounterVec
	late      *prometheus.CounterVec
	legMiles  prometheus.Histogram
}

// NewPromRecorder creates a recorder with a private registry.
func NewPromRecorder() (*PromRecorder, error) {
	reg := prometheus.NewRegistry()

	r := &PromRecorder{
		registry: reg,
		miles: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "depot_vehicle_miles",
			Help: "Miles traveled by a vehicle including the return hop",
		}, []string{"vehicle_id"}),
		duration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "depot_vehicle_route_seconds",
			Help: "Time between departure and return to the depot",
		}, []string{"vehicle_id"}),
		delivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "depot_shipments_delivered_total",
			Help: "Shipments stamped delivered",
		}, []string{"vehicle_id"}),
		late: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "depot_shipments_late_total",
			Help: "Shipments delivered after their deadline",
		}, []string{"vehicle_id"}),
		legMiles: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "depot_route_leg_miles",
			Help:    "Distance of each hop between stops",
			Buckets: []float64{0.5, 1, 2, 3, 5, 8, 13},
		}),
	}

	for _, c := range []prometheus.Collector{r.miles, r.duration, r.delivered, r.late, r.legMiles} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Registry exposes the underlying registry for gathering.
func (r *PromRecorder) Registry() *prometheus.Registry { return r.registry }

func (r *PromRecorder) RecordRoute(plan *domain.RoutePlan, delivered []*domain.Shipment) error {
	id := strconv.Itoa(plan.VehicleID)

	r.miles.WithLabelValues(id).Set(plan.TotalMiles)
	r.duration.WithLabelValues(id).Set(plan.TotalDuration.Seconds())

	for _, stop := range plan.Stops {
		r.legMiles.Observe(stop.LegMiles)
	}
	r.legMiles.Observe(plan.ReturnMiles)

	for _, s := range delivered {
		if !s.Delivered() {
			continue
		}
		r.delivered.WithLabelValues(id).Inc()
		if s.Late() {
			r.late.WithLabelValues(id).Inc()
		}
	}

	return nil
}

// WriteTextfile writes the current metrics in the Prometheus text format,
// suitable for the node exporter textfile collector.
func (r *PromRecorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

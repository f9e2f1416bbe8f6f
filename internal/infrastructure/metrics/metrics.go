package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks donation lifecycle outcomes.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	DonationsRegistered prometheus.Counter
	DonationsFinalized  *prometheus.CounterVec
	WalkInDonations     *prometheus.CounterVec
	StockIncrements     *prometheus.CounterVec
	IneligibleAttempts  *prometheus.CounterVec
}

// New registers the metrics on the given registerer, or the default one when nil.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		DonationsRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "blood_donation_registrations_total",
			Help: "Total number of donor registrations for scheduled drives",
		}),
		DonationsFinalized: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "blood_donation_finalized_total",
			Help: "Total number of finalized scheduled donations by status",
		}, []string{"status"}),
		WalkInDonations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "blood_donation_walk_in_total",
			Help: "Total number of walk-in donations by status",
		}, []string{"status"}),
		StockIncrements: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "blood_stock_increments_total",
			Help: "Total number of bags added to stock by blood group",
		}, []string{"blood_group"}),
		IneligibleAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "blood_donation_ineligible_total",
			Help: "Total number of rejected donation attempts by reason",
		}, []string{"reason"}),
	}
}

func (m *Metrics) IncrementRegistered() {
	if m == nil {
		return
	}
	m.DonationsRegistered.Inc()
}

func (m *Metrics) IncrementFinalized(status string) {
	if m == nil {
		return
	}
	m.DonationsFinalized.WithLabelValues(status).Inc()
}

func (m *Metrics) IncrementWalkIn(status string) {
	if m == nil {
		return
	}
	m.WalkInDonations.WithLabelValues(status).Inc()
}

func (m *Metrics) IncrementStock(bloodGroup string) {
	if m == nil {
		return
	}
	m.StockIncrements.WithLabelValues(bloodGroup).Inc()
}

func (m *Metrics) IncrementIneligible(reason string) {
	if m == nil {
		return
	}
	m.IneligibleAttempts.WithLabelValues(reason).Inc()
}

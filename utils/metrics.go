package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics for the booking engine.
type Metrics struct {
	BookingsCreated     prometheus.Counter
	BookingsCancelled   prometheus.Counter
	BookingsRescheduled prometheus.Counter
	CapacityRejections  prometheus.Counter
	PolicyViolations    *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		BookingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "The total number of bookings created",
		}),
		BookingsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_cancelled_total",
			Help:      "The total number of bookings cancelled",
		}),
		BookingsRescheduled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_rescheduled_total",
			Help:      "The total number of bookings rescheduled",
		}),
		CapacityRejections: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "capacity_rejections_total",
			Help:      "Booking attempts rejected because the day was full",
		}),
		PolicyViolations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "policy_violations_total",
			Help:      "Booking operations rejected by a temporal policy rule",
		}, []string{"rule"}),
	}
}

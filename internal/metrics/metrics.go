package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotel",
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	availabilityQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotel",
			Name:      "availability_queries_total",
			Help:      "Count of availability queries by outcome.",
		},
		[]string{"outcome"},
	)

	bookingCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotel",
			Name:      "booking_created_total",
			Help:      "Count of bookings created.",
		},
	)

	bookingConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotel",
			Name:      "booking_conflicts_total",
			Help:      "Count of booking inserts rejected by the overlap invariant.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, availabilityQueries, bookingCreated, bookingConflicts)
	})
}

func IncHTTP(method, path, status string) {
	httpRequests.WithLabelValues(method, path, status).Inc()
}

func IncAvailabilityQuery(outcome string) {
	availabilityQueries.WithLabelValues(outcome).Inc()
}

func IncBookingCreated() {
	bookingCreated.Inc()
}

func IncBookingConflict() {
	bookingConflicts.Inc()
}

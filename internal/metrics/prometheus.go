package metrics

import "github.com/prometheus/client_golang/prometheus"

var HTTPRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests received",
	},
	[]string{"endpoint", "status", "method"},
)

var HTTPRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"endpoint", "method"},
)

var HTTPErrorsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_errors_total",
		Help: "Total number of failed HTTP requests (4xx/5xx)",
	},
	[]string{"endpoint", "status", "method"},
)

var BookingsCreatedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Total number of bookings created",
	},
)

var CapacityRejectionsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "capacity_rejections_total",
		Help: "Total number of reservations rejected for insufficient capacity",
	},
)

var PaymentsVerifiedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "payments_verified_total",
		Help: "Total number of payment verification attempts",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		HTTPErrorsTotal,
		BookingsCreatedTotal,
		CapacityRejectionsTotal,
		PaymentsVerifiedTotal,
	)
}

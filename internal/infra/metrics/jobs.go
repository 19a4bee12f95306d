package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		jobsTotal,
		pollIterations,
		jobsInFlight,
	)
}

var (
	jobsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendor_jobs_total",
			Help: "Asynchronous vendor jobs by vendor and terminal outcome.",
		},
		[]string{"vendor", "outcome"},
	)

	pollIterations = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vendor_job_poll_iterations",
			Help:    "Status checks performed before a job reached a terminal state.",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34, 55, 89},
		},
		[]string{"vendor"},
	)

	jobsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "vendor_jobs_in_flight",
			Help: "Vendor jobs currently being driven by the worker pool.",
		},
	)
)

func IncJob(vendor, outcome string) {
	jobsTotal.WithLabelValues(norm(vendor), norm(outcome)).Inc()
}

func ObservePollIterations(vendor string, n int) {
	pollIterations.WithLabelValues(norm(vendor)).Observe(float64(n))
}

func JobStarted()  { jobsInFlight.Inc() }
func JobFinished() { jobsInFlight.Dec() }

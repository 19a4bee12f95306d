package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		browserQueries,
		browserRowsFetched,
	)
}

var (
	browserQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "table_browser_queries_total",
			Help: "Generic table browser backend queries by action and success flag.",
		},
		[]string{"action", "success"},
	)

	browserRowsFetched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "table_browser_rows_fetched_total",
			Help: "Rows returned by the generic table browser.",
		},
	)
)

func IncBrowserQuery(action string, success bool) {
	browserQueries.WithLabelValues(norm(action), strconv.FormatBool(success)).Inc()
}

func AddBrowserRows(n int) {
	browserRowsFetched.Add(float64(n))
}

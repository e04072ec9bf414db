package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MongoLatency is the duration of Mongo queries.
	MongoLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dataaccess_mongo_latency",
			Help: "Duration of Mongo queries",
		},
		[]string{"dal", "query", "database", "collection"},
	)

	// MongoTotalRequests is the total number of Mongo requests.
	MongoTotalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataaccess_mongo_total_requests",
			Help: "Total number of Mongo requests",
		},
		[]string{"dal", "query", "database", "collection"},
	)

	// MongoTotalErrors is the total number of Mongo requests that failed.
	MongoTotalErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataaccess_mongo_total_errors",
			Help: "Total number of Mongo requests that failed",
		},
		[]string{"dal", "query", "database", "collection"},
	)
)

// Observe starts the metrics for a query. The returned function must be called with the result of the query.
func Observe(dal, query, database, collection string) func(err error) {
	MongoTotalRequests.WithLabelValues(dal, query, database, collection).Inc()
	t := prometheus.NewTimer(MongoLatency.WithLabelValues(dal, query, database, collection))
	return func(err error) {
		t.ObserveDuration()
		if err != nil {
			MongoTotalErrors.WithLabelValues(dal, query, database, collection).Inc()
		}
	}
}

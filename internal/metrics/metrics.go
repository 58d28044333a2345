package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/limaJavier/tournament/pkg/sat"
	"github.com/limaJavier/tournament/pkg/search"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sts"

// Metrics collects oracle and search statistics on a private registry. It
// implements search.Observer and is safe for concurrent use.
type Metrics struct {
	registry      *prometheus.Registry
	queries       *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	incumbent     *prometheus.GaugeVec
	searches      *prometheus.CounterVec
}

var _ search.Observer = (*Metrics)(nil)

func New() *Metrics {
	labels := []string{"tag", "teams"}
	metrics := &Metrics{
		registry: prometheus.NewRegistry(),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oracle_queries_total",
			Help:      "Oracle queries by answer.",
		}, append(labels, "status")),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "oracle_query_duration_seconds",
			Help:      "Wall-clock time of a single oracle query.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}, labels),
		incumbent: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "incumbent_imbalance",
			Help:      "Maximum imbalance of the best schedule found so far.",
		}, labels),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Finished searches by final state.",
		}, append(labels, "state")),
	}
	metrics.registry.MustRegister(metrics.queries, metrics.queryDuration, metrics.incumbent, metrics.searches)
	return metrics
}

func (metrics *Metrics) Registry() *prometheus.Registry {
	return metrics.registry
}

func (metrics *Metrics) ObserveQuery(tag search.Tag, teams uint64, status sat.Status, elapsed time.Duration) {
	metrics.queries.WithLabelValues(tag.Key(), strconv.FormatUint(teams, 10), status.String()).Inc()
	metrics.queryDuration.WithLabelValues(tag.Key(), strconv.FormatUint(teams, 10)).Observe(elapsed.Seconds())
}

func (metrics *Metrics) ObserveIncumbent(tag search.Tag, teams uint64, objective uint64) {
	metrics.incumbent.WithLabelValues(tag.Key(), strconv.FormatUint(teams, 10)).Set(float64(objective))
}

func (metrics *Metrics) ObserveResult(tag search.Tag, teams uint64, result search.Result) {
	metrics.searches.WithLabelValues(tag.Key(), strconv.FormatUint(teams, 10), result.State.String()).Inc()
}

// WriteToTextfile writes the registry in the node exporter textfile format.
func (metrics *Metrics) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, metrics.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}

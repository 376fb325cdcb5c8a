package metrics

import (
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func status(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// RecordTransaction records the outcome and duration of one transaction.
func RecordTransaction(committed bool, duration time.Duration) {
	result := "commit"
	if !committed {
		result = "rollback"
	}
	DBTransactionsTotal.WithLabelValues(result).Inc()
	DBTransactionDuration.WithLabelValues(result).Observe(duration.Seconds())
}

// RecordSave records a persisted entity. Operation should be "create" or "update".
func RecordSave(entity, operation string) {
	EntitySavesTotal.WithLabelValues(entity, operation).Inc()
}

// RecordPublish records a transactional author-with-articles write.
// The article count is only observed for successful writes.
func RecordPublish(success bool, articles int) {
	PublishOperationsTotal.WithLabelValues(status(success)).Inc()
	if success {
		PublishedArticles.Observe(float64(articles))
	}
}

// RecordSeed records a seed routine run.
func RecordSeed(success bool) {
	SeedRunsTotal.WithLabelValues(status(success)).Inc()
}

// SetCircuitBreakerState records the state of the named breaker.
func SetCircuitBreakerState(name string, state int) {
	DBCircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordCircuitBreakerRejection counts a statement the named breaker refused.
func RecordCircuitBreakerRejection(name string) {
	DBCircuitBreakerRejections.WithLabelValues(name).Inc()
}

// UpdateDBStats copies connection pool statistics into the connection gauges.
func UpdateDBStats(stats sql.DBStats) {
	DBConnectionsActive.Set(float64(stats.InUse))
	DBConnectionsIdle.Set(float64(stats.Idle))
}

// Sample is one flattened metric value.
type Sample struct {
	Name   string
	Labels string
	Value  float64
}

// Snapshot gathers the application's metrics from g and flattens them into
// samples sorted by name. Histograms report their sample count and sum.
// Only metric families with the given prefixes are returned; no prefixes means all.
func Snapshot(g prometheus.Gatherer, prefixes ...string) ([]Sample, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}

	samples := make([]Sample, 0, len(families))
	for _, mf := range families {
		if !hasPrefix(mf.GetName(), prefixes) {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := formatLabels(m.GetLabel())
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				samples = append(samples, Sample{mf.GetName(), labels, m.GetCounter().GetValue()})
			case dto.MetricType_GAUGE:
				samples = append(samples, Sample{mf.GetName(), labels, m.GetGauge().GetValue()})
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				samples = append(samples,
					Sample{mf.GetName() + "_count", labels, float64(h.GetSampleCount())},
					Sample{mf.GetName() + "_sum", labels, h.GetSampleSum()},
				)
			}
		}
	}

	sort.SliceStable(samples, func(i, j int) bool {
		if samples[i].Name != samples[j].Name {
			return samples[i].Name < samples[j].Name
		}
		return samples[i].Labels < samples[j].Labels
	})
	return samples, nil
}

func hasPrefix(name string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

func formatLabels(pairs []*dto.LabelPair) string {
	parts := make([]string, 0, len(pairs))
	for _, lp := range pairs {
		parts = append(parts, lp.GetName()+"="+lp.GetValue())
	}
	return strings.Join(parts, ",")
}

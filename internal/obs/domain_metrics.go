package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// FactorLookupTotal counts factor table lookups by outcome (exact, below_min, above_max, gap, empty).
	FactorLookupTotal *prometheus.CounterVec
	// FactorWriteTotal counts administrative factor writes by operation and result.
	FactorWriteTotal *prometheus.CounterVec
	// FactorCacheTotal counts active-table cache reads by result (hit, miss, error).
	FactorCacheTotal *prometheus.CounterVec
	// OrderRecomputeTotal counts order recomputations by result.
	OrderRecomputeTotal *prometheus.CounterVec
	// OrderRecomputeDuration records recompute latency in milliseconds.
	OrderRecomputeDuration prometheus.Histogram
	// VendorEditRejectedTotal counts vendor edits refused because of the order state.
	VendorEditRejectedTotal prometheus.Counter
	// RecomputeTaskTotal counts background recompute task outcomes.
	RecomputeTaskTotal *prometheus.CounterVec
	// ReportExportTotal counts commission report exports by format.
	ReportExportTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		FactorLookupTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "factor_lookup_total",
			Help:      "Count of commission factor lookups by outcome.",
		}, []string{"outcome"})
		FactorWriteTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "factor_write_total",
			Help:      "Count of factor table writes by operation and result.",
		}, []string{"op", "result"})
		FactorCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "factor_cache_total",
			Help:      "Count of active factor table cache reads by result.",
		}, []string{"result"})
		OrderRecomputeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_recompute_total",
			Help:      "Count of order commission recomputations by result.",
		}, []string{"result"})
		OrderRecomputeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_recompute_duration_ms",
			Help:      "Latency of order commission recomputation in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		})
		VendorEditRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vendor_edit_rejected_total",
			Help:      "Number of vendor reference edits rejected by the order state guard.",
		})
		RecomputeTaskTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recompute_task_total",
			Help:      "Count of background recompute task outcomes.",
		}, []string{"task", "result"})
		ReportExportTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_export_total",
			Help:      "Count of commission report exports by format.",
		}, []string{"format"})

		mustRegisterCollector(reg, FactorLookupTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				FactorLookupTotal = v
			}
		})
		mustRegisterCollector(reg, FactorWriteTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				FactorWriteTotal = v
			}
		})
		mustRegisterCollector(reg, FactorCacheTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				FactorCacheTotal = v
			}
		})
		mustRegisterCollector(reg, OrderRecomputeTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				OrderRecomputeTotal = v
			}
		})
		mustRegisterCollector(reg, OrderRecomputeDuration, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Histogram); ok {
				OrderRecomputeDuration = v
			}
		})
		mustRegisterCollector(reg, VendorEditRejectedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				VendorEditRejectedTotal = v
			}
		})
		mustRegisterCollector(reg, RecomputeTaskTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				RecomputeTaskTotal = v
			}
		})
		mustRegisterCollector(reg, ReportExportTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ReportExportTotal = v
			}
		})
	})
}

// IncFactorLookup records a lookup outcome. It is a no-op until metrics are registered.
func IncFactorLookup(outcome string) {
	if FactorLookupTotal != nil {
		FactorLookupTotal.WithLabelValues(outcome).Inc()
	}
}

// IncFactorWrite records a factor table write.
func IncFactorWrite(op, result string) {
	if FactorWriteTotal != nil {
		FactorWriteTotal.WithLabelValues(op, result).Inc()
	}
}

// IncFactorCache records an active-table cache read.
func IncFactorCache(result string) {
	if FactorCacheTotal != nil {
		FactorCacheTotal.WithLabelValues(result).Inc()
	}
}

// ObserveOrderRecompute records the result and latency of one order recompute.
func ObserveOrderRecompute(result string, ms float64) {
	if OrderRecomputeTotal != nil {
		OrderRecomputeTotal.WithLabelValues(result).Inc()
	}
	if OrderRecomputeDuration != nil && ms >= 0 {
		OrderRecomputeDuration.Observe(ms)
	}
}

// IncVendorEditRejected records a refused vendor edit.
func IncVendorEditRejected() {
	if VendorEditRejectedTotal != nil {
		VendorEditRejectedTotal.Inc()
	}
}

// IncRecomputeTask records a background task outcome.
func IncRecomputeTask(task, result string) {
	if RecomputeTaskTotal != nil {
		RecomputeTaskTotal.WithLabelValues(task, result).Inc()
	}
}

// IncReportExport records a report export.
func IncReportExport(format string) {
	if ReportExportTotal != nil {
		ReportExportTotal.WithLabelValues(format).Inc()
	}
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}

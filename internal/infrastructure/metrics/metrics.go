package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// 조정 패스 관련 메트릭
	ReconcilePasses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "detnet_reconcile_passes_total",
			Help: "Total number of reconciliation passes executed",
		},
		[]string{"kind", "outcome"}, // verified, adapter-pending, failed
	)

	ReconcilePassDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "detnet_reconcile_pass_duration_seconds",
			Help:    "Time spent in each reconciliation pass",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	// 네이티브 서비스 호출 관련 메트릭
	NativeCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "detnet_native_call_duration_seconds",
			Help:    "Time spent in each host network service call",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // open, close, enumerate, query, create, delete
	)

	NativeCallFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "detnet_native_call_failures_total",
			Help: "Total number of failed host network service calls",
		},
		[]string{"operation"},
	)

	// 폴링 관련 메트릭 (watch 모드)
	PollingCycleCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "detnet_polling_cycles_total",
			Help: "Total number of polling cycles executed",
		},
	)

	PollingBackoffLevel = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "detnet_polling_backoff_level",
			Help: "Current backoff level (0 = no backoff)",
		},
	)

	// 서비스 상태 메트릭
	ServiceAvailable = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "detnet_service_available",
			Help: "Host network service availability (1 = available, 0 = unavailable)",
		},
	)

	AgentInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "detnet_agent_info",
			Help: "Agent build and host information",
		},
		[]string{"version", "hostname"},
	)
)

// RecordReconcilePass는 조정 패스 결과를 기록합니다
func RecordReconcilePass(kind, outcome string, durationSeconds float64) {
	ReconcilePasses.WithLabelValues(kind, outcome).Inc()
	ReconcilePassDuration.WithLabelValues(kind).Observe(durationSeconds)
}

// ObserveNativeCall은 네이티브 호출 소요 시간을 기록합니다
func ObserveNativeCall(operation string, durationSeconds float64, failed bool) {
	NativeCallDuration.WithLabelValues(operation).Observe(durationSeconds)
	if failed {
		NativeCallFailures.WithLabelValues(operation).Inc()
	}
}

// RecordPollingCycle은 폴링 사이클 실행을 기록합니다
func RecordPollingCycle() {
	PollingCycleCount.Inc()
}

// SetBackoffLevel은 현재 백오프 레벨을 설정합니다
func SetBackoffLevel(level float64) {
	PollingBackoffLevel.Set(level)
}

// SetServiceAvailable은 호스트 네트워크 서비스 가용성을 설정합니다
func SetServiceAvailable(available bool) {
	if available {
		ServiceAvailable.Set(1)
	} else {
		ServiceAvailable.Set(0)
	}
}

// SetAgentInfo는 에이전트 정보 메트릭을 설정합니다
func SetAgentInfo(version, hostname string) {
	AgentInfo.WithLabelValues(version, hostname).Set(1)
}

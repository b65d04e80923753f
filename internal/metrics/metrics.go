// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// サービス層と外部APIクライアントから利用する。
type MetricsCollector interface {
	// RecordChartComputed はネイタルチャート計算の完了を記録する。
	RecordChartComputed()
	// RecordDegradedBody はチャート計算中に位置算出に失敗した天体を記録する。
	RecordDegradedBody(planet string)
	// RecordChartLatency はチャート計算のレイテンシを記録する。
	RecordChartLatency(duration time.Duration)
	// RecordExternalRequest は外部APIリクエストの結果を記録する。
	// serviceはgemini/nominatim/horoscope、outcomeはsuccess/failure。
	RecordExternalRequest(service string, outcome string)
	// RecordAIGeneration はAI生成の結果を記録する。
	// outcomeはsuccess/failure。
	RecordAIGeneration(outcome string)
	// RecordContentSource は日次コンテンツの取得元を記録する。
	// sourceはcache/db/external/fallback。
	RecordContentSource(source string)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	chartComputed    prometheus.Counter
	degradedBodies   *prometheus.CounterVec
	chartLatency     prometheus.Histogram
	externalRequests *prometheus.CounterVec
	aiGenerations    *prometheus.CounterVec
	contentSources   *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		chartComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "starman_chart_computations_total",
			Help: "ネイタルチャート計算の合計数",
		}),
		degradedBodies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "starman_chart_degraded_bodies_total",
			Help: "位置算出に失敗しデフォルト値になった天体の合計数",
		}, []string{"planet"}),
		chartLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "starman_chart_latency_seconds",
			Help:    "ネイタルチャート計算のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		externalRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "starman_external_requests_total",
			Help: "外部APIリクエストのサービス・結果別の合計数",
		}, []string{"service", "outcome"}),
		aiGenerations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "starman_ai_generations_total",
			Help: "AI生成の結果別の合計数",
		}, []string{"outcome"}),
		contentSources: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "starman_content_source_total",
			Help: "日次コンテンツの取得元別の合計数",
		}, []string{"source"}),
	}

	reg.MustRegister(
		c.chartComputed,
		c.degradedBodies,
		c.chartLatency,
		c.externalRequests,
		c.aiGenerations,
		c.contentSources,
	)

	return c
}

// RecordChartComputed はチャート計算の完了を記録する。
func (c *Collector) RecordChartComputed() {
	c.chartComputed.Inc()
}

// RecordDegradedBody は位置算出に失敗した天体を記録する。
func (c *Collector) RecordDegradedBody(planet string) {
	c.degradedBodies.WithLabelValues(planet).Inc()
}

// RecordChartLatency はチャート計算のレイテンシを記録する。
func (c *Collector) RecordChartLatency(duration time.Duration) {
	c.chartLatency.Observe(duration.Seconds())
}

// RecordExternalRequest は外部APIリクエストの結果を記録する。
func (c *Collector) RecordExternalRequest(service string, outcome string) {
	c.externalRequests.WithLabelValues(service, outcome).Inc()
}

// RecordAIGeneration はAI生成の結果を記録する。
func (c *Collector) RecordAIGeneration(outcome string) {
	c.aiGenerations.WithLabelValues(outcome).Inc()
}

// RecordContentSource は日次コンテンツの取得元を記録する。
func (c *Collector) RecordContentSource(source string) {
	c.contentSources.WithLabelValues(source).Inc()
}

// NoopCollector は何も記録しないMetricsCollector実装。
// メトリクスを公開しないワーカーモードやテストで使う。
type NoopCollector struct{}

func (NoopCollector) RecordChartComputed()                 {}
func (NoopCollector) RecordDegradedBody(string)            {}
func (NoopCollector) RecordChartLatency(time.Duration)     {}
func (NoopCollector) RecordExternalRequest(string, string) {}
func (NoopCollector) RecordAIGeneration(string)            {}
func (NoopCollector) RecordContentSource(string)           {}

var _ MetricsCollector = NoopCollector{}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}

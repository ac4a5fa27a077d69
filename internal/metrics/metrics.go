// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 登録結果のラベル値
const (
	ResultOK           = "ok"
	ResultInvalidEmail = "invalid_email"
	ResultNoInterest   = "no_interest"
	ResultStoreError   = "store_error"
)

// Recorder はメトリクス記録のインターフェース。
// サービス層とHTTPミドルウェアから利用する。
type Recorder interface {
	RecordSubscribe(result string)
	RecordStoreLatency(op string, duration time.Duration)
	RecordSubscribersListed(count int)
	RecordHTTPStatus(statusCode int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	subscribe    *prometheus.CounterVec
	storeLatency *prometheus.HistogramVec
	listed       prometheus.Gauge
	httpStatus   *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		subscribe: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "grown_subscribe_total",
			Help: "ウェイトリスト登録リクエストの結果別件数",
		}, []string{"result"}),
		storeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "grown_store_latency_seconds",
			Help:    "登録者ストア操作のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		listed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "grown_subscribers_listed",
			Help: "直近の一覧表示で返した登録者数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "grown_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.subscribe,
		c.storeLatency,
		c.listed,
		c.httpStatus,
	)

	return c
}

// RecordSubscribe は登録リクエストの結果を記録する。
func (c *Collector) RecordSubscribe(result string) {
	c.subscribe.WithLabelValues(result).Inc()
}

// RecordStoreLatency はストア操作のレイテンシを記録する。
func (c *Collector) RecordStoreLatency(op string, duration time.Duration) {
	c.storeLatency.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordSubscribersListed は一覧表示で返した登録者数を記録する。
func (c *Collector) RecordSubscribersListed(count int) {
	c.listed.Set(float64(count))
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// NopRecorder は何も記録しないRecorder。
type NopRecorder struct{}

func (NopRecorder) RecordSubscribe(string)                    {}
func (NopRecorder) RecordStoreLatency(string, time.Duration) {}
func (NopRecorder) RecordSubscribersListed(int)               {}
func (NopRecorder) RecordHTTPStatus(int)                      {}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

var (
	_ Recorder = (*Collector)(nil)
	_ Recorder = NopRecorder{}
)

package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics 定义业务监控指标
type BusinessMetrics struct {
	GasOracleRequestsTotal *prometheus.CounterVec
	TransferTotal          *prometheus.CounterVec
	TransferDuration       *prometheus.HistogramVec
	TransferAmountTotal    *prometheus.CounterVec
}

// Business is nil until InitBusinessMetrics runs; the Observe helpers are no-ops before that.
var Business *BusinessMetrics

// InitBusinessMetrics 初始化业务指标
func InitBusinessMetrics() {
	Business = &BusinessMetrics{
		GasOracleRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bnb_gas_oracle_requests_total",
			Help: "Gas oracle lookups by tier and result (ok or fallback)",
		}, []string{"tier", "result"}),
		TransferTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bnb_transfer_total",
			Help: "Transfers submitted by network and status",
		}, []string{"network", "status"}),
		TransferDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bnb_transfer_duration_seconds",
			Help:    "Time from transfer request to broadcast reply",
			Buckets: prometheus.DefBuckets,
		}, []string{"network"}),
		TransferAmountTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bnb_transfer_amount_total",
			Help: "Total BNB sent by successful transfers",
		}, []string{"network"}),
	}
}

// ObserveGasOracle counts one gas oracle lookup.
func ObserveGasOracle(tier string, ok bool) {
	if Business == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "fallback"
	}
	Business.GasOracleRequestsTotal.WithLabelValues(tier, result).Inc()
}

// ObserveTransfer records one transfer attempt. amount is in BNB and only counted on success.
func ObserveTransfer(network string, ok bool, seconds float64, amount float64) {
	if Business == nil {
		return
	}
	status := "success"
	if !ok {
		status = "failed"
	}
	Business.TransferTotal.WithLabelValues(network, status).Inc()
	Business.TransferDuration.WithLabelValues(network).Observe(seconds)
	if ok {
		Business.TransferAmountTotal.WithLabelValues(network).Add(amount)
	}
}

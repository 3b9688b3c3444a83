package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// VentureFund Metrics Collector
// Provides comprehensive metrics for monitoring

var (
	// Singleton collector
	collector     *Collector
	collectorOnce sync.Once
)

// Collector holds all VentureFund metrics
type Collector struct {
	// Fund lifecycle metrics
	FundsTotal       *prometheus.CounterVec
	FundPhase        *prometheus.GaugeVec
	FundBalance      *prometheus.GaugeVec
	TotalContributed *prometheus.GaugeVec
	CumulativeProfit *prometheus.GaugeVec

	// Contribution metrics
	ContributionsTotal  *prometheus.CounterVec
	ContributionVolume  *prometheus.CounterVec
	EntryFeesCollected  *prometheus.CounterVec
	ContributionLatency *prometheus.HistogramVec

	// Payout metrics
	PayoutsTotal      *prometheus.CounterVec
	PayoutGrossVolume *prometheus.CounterVec
	PayoutNetVolume   *prometheus.CounterVec
	CarryFeesAccrued  *prometheus.CounterVec
	PayoutDiscount    *prometheus.HistogramVec

	// Withdrawal metrics
	WithdrawalsTotal  *prometheus.CounterVec
	WithdrawalVolume  *prometheus.CounterVec
	WithdrawalLatency *prometheus.HistogramVec

	// Position metrics
	PositionsLive     *prometheus.GaugeVec
	PositionTransfers *prometheus.CounterVec
	PositionSplits    *prometheus.CounterVec
	CheckpointsTotal  *prometheus.CounterVec

	// Stake boost metrics
	StakedTotal     *prometheus.GaugeVec
	StakeEvents     *prometheus.CounterVec
	UnstakeEvents   *prometheus.CounterVec
	CurrentDiscount *prometheus.GaugeVec

	// Capital deployment metrics
	DeployedCapital *prometheus.GaugeVec
	Deployments     *prometheus.CounterVec
	CapitalReturns  *prometheus.CounterVec

	// WebSocket metrics
	WSConnectionsActive *prometheus.GaugeVec
	WSMessagesTotal     *prometheus.CounterVec
	WSMessageLatency    *prometheus.HistogramVec
	WSSubscriptions     *prometheus.GaugeVec

	// API metrics
	APIRequestsTotal  *prometheus.CounterVec
	APIRequestLatency *prometheus.HistogramVec
	APIErrorsTotal    *prometheus.CounterVec
	RateLimitHits     *prometheus.CounterVec

	// System metrics
	ActiveAccounts prometheus.Gauge
	BlockHeight    prometheus.Gauge
	BlockTime      *prometheus.HistogramVec
	TxPoolSize     prometheus.Gauge
	PeerCount      prometheus.Gauge
}

// GetCollector returns the singleton metrics collector
func GetCollector() *Collector {
	collectorOnce.Do(func() {
		collector = newCollector()
	})
	return collector
}

// newCollector creates a new metrics collector
func newCollector() *Collector {
	c := &Collector{}

	// Fund lifecycle metrics
	c.FundsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venturefund",
			Subsystem: "funds",
			Name:      "total",
			Help:      "Total number of funds created",
		},
		[]string{"denom"},
	)

	c.FundPhase = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "venturefund",
			Subsystem: "funds",
			Name:      "phase",
			Help:      "Fund phase (0=funding, 1=active, 2=closed)",
		},
		[]string{"fund_id"},
	)

	c.FundBalance = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "venturefund",
			Subsystem: "funds",
			Name:      "balance",
			Help:      "Undeployed fund balance",
		},
		[]string{"fund_id"},
	)

	c.TotalContributed = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "venturefund",
			Subsystem: "funds",
			Name:      "total_contributed",
			Help:      "Total net contributions into the fund",
		},
		[]string{"fund_id"},
	)

	c.CumulativeProfit = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "venturefund",
			Subsystem: "funds",
			Name:      "cumulative_profit",
			Help:      "Cumulative profit injected into the fund",
		},
		[]string{"fund_id"},
	)

	// Contribution metrics
	c.ContributionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venturefund",
			Subsystem: "contributions",
			Name:      "total",
			Help:      "Total number of contributions",
		},
		[]string{"fund_id"},
	)

	c.ContributionVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venturefund",
			Subsystem: "contributions",
			Name:      "volume",
			Help:      "Total contribution volume (gross)",
		},
		[]string{"fund_id"},
	)

	c.EntryFeesCollected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venturefund",
			Subsystem: "contributions",
			Name:      "entry_fees",
			Help:      "Total entry fees routed to the treasury",
		},
		[]string{"fund_id"},
	)

	c.ContributionLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "venturefund",
			Subsystem: "contributions",
			Name:      "latency_ms",
			Help:      "Contribution processing latency in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"fund_id"},
	)

	// Payout metrics
	c.PayoutsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venturefund",
			Subsystem: "payouts",
			Name:      "total",
			Help:      "Total number of profit payouts",
		},
		[]string{"fund_id"},
	)

	c.PayoutGrossVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venturefund",
			Subsystem: "payouts",
			Name:      "gross_volume",
			Help:      "Total gross payout volume",
		},
		[]string{"fund_id"},
	)

	c.PayoutNetVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venturefund",
			Subsystem: "payouts",
			Name:      "net_volume",
			Help:      "Total net payout volume after carry fees",
		},
		[]string{"fund_id"},
	)

	c.CarryFeesAccrued = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venturefund",
			Subsystem: "payouts",
			Name:      "carry_fees",
			Help:      "Total carry fees routed to the treasury",
		},
		[]string{"fund_id"},
	)

	c.PayoutDiscount = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "venturefund",
			Subsystem: "payouts",
			Name:      "discount",
			Help:      "Discount applied to carry fees (0-1)",
			Buckets:   []float64{0.05, 0.1, 0.2, 0.3, 0.4, 0.5, 0.75, 1.0},
		},
		[]string{"fund_id"},
	)

	// Withdrawal metrics
	c.WithdrawalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venturefund",
			Subsystem: "withdrawals",
			Name:      "total",
			Help:      "Total number of withdrawals",
		},
		[]string{"fund_id"},
	)

	c.WithdrawalVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venturefund",
			Subsystem: "withdrawals",
			Name:      "volume",
			Help:      "Total withdrawal volume",
		},
		[]string{"fund_id"},
	)

	c.WithdrawalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "venturefund",
			Subsystem: "withdrawals",
			Name:      "latency_ms",
			Help:      "Withdrawal processing latency in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"fund_id"},
	)

	// Position metrics
	c.PositionsLive = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "venturefund",
			Subsystem: "positions",
			Name:      "live",
			Help:      "Number of live positions",
		},
		[]string{"fund_id"},
	)

	c.PositionTransfers = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venturefund",
			Subsystem: "positions",
			Name:      "transfers_total",
			Help:      "Total position transfers",
		},
		[]string{"fund_id"},
	)

	c.PositionSplits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venturefund",
			Subsystem: "positions",
			Name:      "splits_total",
			Help:      "Total position splits",
		},
		[]string{"fund_id"},
	)

	c.CheckpointsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venturefund",
			Subsystem: "positions",
			Name:      "checkpoints_total",
			Help:      "Total participation checkpoints written",
		},
		[]string{"fund_id"},
	)

	// Stake boost metrics
	c.StakedTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "venturefund",
			Subsystem: "stakeboost",
			Name:      "staked_total",
			Help:      "Total tokens staked for discount boost",
		},
		[]string{"fund_id"},
	)

	c.StakeEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venturefund",
			Subsystem: "stakeboost",
			Name:      "stakes_total",
			Help:      "Total stake events",
		},
		[]string{"fund_id"},
	)

	c.UnstakeEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venturefund",
			Subsystem: "stakeboost",
			Name:      "unstakes_total",
			Help:      "Total unstake events",
		},
		[]string{"fund_id"},
	)

	c.CurrentDiscount = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "venturefund",
			Subsystem: "stakeboost",
			Name:      "current_discount",
			Help:      "Participation-weighted carry fee discount (0-1)",
		},
		[]string{"fund_id"},
	)

	// Capital deployment metrics
	c.DeployedCapital = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "venturefund",
			Subsystem: "capital",
			Name:      "deployed",
			Help:      "Capital currently deployed out of the fund",
		},
		[]string{"fund_id"},
	)

	c.Deployments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venturefund",
			Subsystem: "capital",
			Name:      "deployments_total",
			Help:      "Total capital deployments",
		},
		[]string{"fund_id", "destination"},
	)

	c.CapitalReturns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venturefund",
			Subsystem: "capital",
			Name:      "returns_total",
			Help:      "Total capital returns",
		},
		[]string{"fund_id"},
	)

	// WebSocket metrics
	c.WSConnectionsActive = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "venturefund",
			Subsystem: "websocket",
			Name:      "connections_active",
			Help:      "Number of active WebSocket connections",
		},
		[]string{},
	)

	c.WSMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venturefund",
			Subsystem: "websocket",
			Name:      "messages_total",
			Help:      "Total WebSocket messages sent",
		},
		[]string{"channel"},
	)

	c.WSMessageLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "venturefund",
			Subsystem: "websocket",
			Name:      "message_latency_ms",
			Help:      "WebSocket message latency in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100},
		},
		[]string{"channel"},
	)

	c.WSSubscriptions = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "venturefund",
			Subsystem: "websocket",
			Name:      "subscriptions",
			Help:      "Number of active subscriptions per channel",
		},
		[]string{"channel"},
	)

	// API metrics
	c.APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venturefund",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total API requests",
		},
		[]string{"method", "path", "status"},
	)

	c.APIRequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "venturefund",
			Subsystem: "api",
			Name:      "request_latency_ms",
			Help:      "API request latency in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"method", "path"},
	)

	c.APIErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venturefund",
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Total API errors",
		},
		[]string{"method", "path", "error_type"},
	)

	c.RateLimitHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "venturefund",
			Subsystem: "api",
			Name:      "rate_limit_hits",
			Help:      "Total rate limit hits",
		},
		[]string{"limit_type"},
	)

	// System metrics
	c.ActiveAccounts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "venturefund",
			Subsystem: "system",
			Name:      "active_accounts",
			Help:      "Number of accounts holding positions or stakes",
		},
	)

	c.BlockHeight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "venturefund",
			Subsystem: "system",
			Name:      "block_height",
			Help:      "Current block height",
		},
	)

	c.BlockTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "venturefund",
			Subsystem: "system",
			Name:      "block_time_ms",
			Help:      "Block time in milliseconds",
			Buckets:   []float64{100, 250, 500, 1000, 2000, 5000},
		},
		[]string{},
	)

	c.TxPoolSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "venturefund",
			Subsystem: "system",
			Name:      "tx_pool_size",
			Help:      "Transaction pool size",
		},
	)

	c.PeerCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "venturefund",
			Subsystem: "system",
			Name:      "peer_count",
			Help:      "Number of connected peers",
		},
	)

	// Register all metrics
	c.registerAll()

	return c
}

// registerAll registers all metrics with Prometheus
func (c *Collector) registerAll() {
	// Fund lifecycle metrics
	prometheus.MustRegister(c.FundsTotal)
	prometheus.MustRegister(c.FundPhase)
	prometheus.MustRegister(c.FundBalance)
	prometheus.MustRegister(c.TotalContributed)
	prometheus.MustRegister(c.CumulativeProfit)

	// Contribution metrics
	prometheus.MustRegister(c.ContributionsTotal)
	prometheus.MustRegister(c.ContributionVolume)
	prometheus.MustRegister(c.EntryFeesCollected)
	prometheus.MustRegister(c.ContributionLatency)

	// Payout metrics
	prometheus.MustRegister(c.PayoutsTotal)
	prometheus.MustRegister(c.PayoutGrossVolume)
	prometheus.MustRegister(c.PayoutNetVolume)
	prometheus.MustRegister(c.CarryFeesAccrued)
	prometheus.MustRegister(c.PayoutDiscount)

	// Withdrawal metrics
	prometheus.MustRegister(c.WithdrawalsTotal)
	prometheus.MustRegister(c.WithdrawalVolume)
	prometheus.MustRegister(c.WithdrawalLatency)

	// Position metrics
	prometheus.MustRegister(c.PositionsLive)
	prometheus.MustRegister(c.PositionTransfers)
	prometheus.MustRegister(c.PositionSplits)
	prometheus.MustRegister(c.CheckpointsTotal)

	// Stake boost metrics
	prometheus.MustRegister(c.StakedTotal)
	prometheus.MustRegister(c.StakeEvents)
	prometheus.MustRegister(c.UnstakeEvents)
	prometheus.MustRegister(c.CurrentDiscount)

	// Capital deployment metrics
	prometheus.MustRegister(c.DeployedCapital)
	prometheus.MustRegister(c.Deployments)
	prometheus.MustRegister(c.CapitalReturns)

	// WebSocket metrics
	prometheus.MustRegister(c.WSConnectionsActive)
	prometheus.MustRegister(c.WSMessagesTotal)
	prometheus.MustRegister(c.WSMessageLatency)
	prometheus.MustRegister(c.WSSubscriptions)

	// API metrics
	prometheus.MustRegister(c.APIRequestsTotal)
	prometheus.MustRegister(c.APIRequestLatency)
	prometheus.MustRegister(c.APIErrorsTotal)
	prometheus.MustRegister(c.RateLimitHits)

	// System metrics
	prometheus.MustRegister(c.ActiveAccounts)
	prometheus.MustRegister(c.BlockHeight)
	prometheus.MustRegister(c.BlockTime)
	prometheus.MustRegister(c.TxPoolSize)
	prometheus.MustRegister(c.PeerCount)
}

// ============ Recording Helpers ============

// RecordContribution records a contribution event
func (c *Collector) RecordContribution(fundID string, gross, fee float64) {
	c.ContributionsTotal.WithLabelValues(fundID).Inc()
	c.ContributionVolume.WithLabelValues(fundID).Add(gross)
	if fee > 0 {
		c.EntryFeesCollected.WithLabelValues(fundID).Add(fee)
	}
}

// RecordPayout records a profit payout event
func (c *Collector) RecordPayout(fundID string, gross, net, fee, discount float64) {
	c.PayoutsTotal.WithLabelValues(fundID).Inc()
	c.PayoutGrossVolume.WithLabelValues(fundID).Add(gross)
	c.PayoutNetVolume.WithLabelValues(fundID).Add(net)
	if fee > 0 {
		c.CarryFeesAccrued.WithLabelValues(fundID).Add(fee)
	}
	c.PayoutDiscount.WithLabelValues(fundID).Observe(discount)
}

// RecordWithdrawal records a withdrawal event
func (c *Collector) RecordWithdrawal(fundID string, amount float64) {
	c.WithdrawalsTotal.WithLabelValues(fundID).Inc()
	c.WithdrawalVolume.WithLabelValues(fundID).Add(amount)
}

// RecordDeployment records a capital deployment
func (c *Collector) RecordDeployment(fundID, destination string) {
	c.Deployments.WithLabelValues(fundID, destination).Inc()
}

// RecordStake records stake/unstake events and the new fund total
func (c *Collector) RecordStake(fundID string, staked bool, total float64) {
	if staked {
		c.StakeEvents.WithLabelValues(fundID).Inc()
	} else {
		c.UnstakeEvents.WithLabelValues(fundID).Inc()
	}
	c.StakedTotal.WithLabelValues(fundID).Set(total)
}

// UpdateFundState updates the per-fund state gauges
func (c *Collector) UpdateFundState(fundID string, phase int, balance, contributed, profit float64) {
	c.FundPhase.WithLabelValues(fundID).Set(float64(phase))
	c.FundBalance.WithLabelValues(fundID).Set(balance)
	c.TotalContributed.WithLabelValues(fundID).Set(contributed)
	c.CumulativeProfit.WithLabelValues(fundID).Set(profit)
}

// RecordAPIRequest records an API request
func (c *Collector) RecordAPIRequest(method, path, status string, latencyMs float64) {
	c.APIRequestsTotal.WithLabelValues(method, path, status).Inc()
	c.APIRequestLatency.WithLabelValues(method, path).Observe(latencyMs)
}

// RecordWSConnection records WebSocket connection changes
func (c *Collector) RecordWSConnection(delta int) {
	c.WSConnectionsActive.WithLabelValues().Add(float64(delta))
}

// RecordWSMessage records a WebSocket message
func (c *Collector) RecordWSMessage(channel string, latencyMs float64) {
	c.WSMessagesTotal.WithLabelValues(channel).Inc()
	c.WSMessageLatency.WithLabelValues(channel).Observe(latencyMs)
}

// UpdateSystemMetrics updates system-level metrics
func (c *Collector) UpdateSystemMetrics(blockHeight int64, txPoolSize int, peerCount int) {
	c.BlockHeight.Set(float64(blockHeight))
	c.TxPoolSize.Set(float64(txPoolSize))
	c.PeerCount.Set(float64(peerCount))
}

// ============ HTTP Handler ============

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for measuring latency
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ElapsedMs returns the elapsed time in milliseconds
func (t *Timer) ElapsedMs() float64 {
	return float64(time.Since(t.start).Microseconds()) / 1000.0
}

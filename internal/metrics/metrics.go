package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Transfer Stream Metrics
var (
	TransfersExtracted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "transfers_extracted_total",
		Help: "The total number of tracked-contract transfer events extracted",
	})

	LedgerDeltasApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_deltas_applied_total",
		Help: "The total number of balance deltas applied to the additive store",
	})
)

// Token Discovery Metrics
var (
	CandidatesSeen = promauto.NewCounter(prometheus.CounterOpts{
		Name: "token_candidates_seen_total",
		Help: "The total number of calls retained by the call-trace filter",
	})

	CandidatesRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "token_candidates_rejected_total",
		Help: "The total number of candidates rejected by classification heuristics",
	})

	CandidatesAbandoned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "token_candidates_abandoned_total",
		Help: "The total number of candidates abandoned during eth_call verification",
	})

	TokensDiscovered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tokens_discovered_total",
		Help: "The total number of verified token contracts emitted",
	})
)

// Block Processing Metrics
var (
	LastProcessedBlock = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "streamer_last_processed_block",
		Help: "The last block number processed by the streamer",
	})

	EthCallBatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "eth_call_batch_duration_seconds",
		Help:    "Time taken for one read-only call batch round trip",
		Buckets: prometheus.DefBuckets,
	})

	PublishDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "publish_duration_seconds",
		Help:    "Time taken to publish block streams to Kafka",
		Buckets: prometheus.DefBuckets,
	})
)

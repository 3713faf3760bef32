package emulator

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ledgersim/ledgersim/packages/ledgerstate"
)

type metrics struct {
	acceptedTransactions prometheus.Counter
	rejectedTransactions *prometheus.CounterVec
	createdBlocks        prometheus.Counter
	pooledTransactions   prometheus.Gauge
	utxoSetSize          prometheus.Gauge
	currentSlot          prometheus.Gauge
}

func newMetrics(registerer prometheus.Registerer) *metrics {
	m := &metrics{
		acceptedTransactions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "emulator_accepted_transactions_total",
			Help: "number of transactions that were applied to the ledger",
		}),
		rejectedTransactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "emulator_rejected_transactions_total",
			Help: "number of transactions that failed validation",
		}, []string{
			"category",
		}),
		createdBlocks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "emulator_blocks_total",
			Help: "number of blocks appended to the chain",
		}),
		pooledTransactions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "emulator_pooled_transactions",
			Help: "current number of transactions waiting in the pool",
		}),
		utxoSetSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "emulator_utxo_set_size",
			Help: "current number of unspent outputs",
		}),
		currentSlot: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "emulator_current_slot",
			Help: "current slot of the emulator",
		}),
	}

	if registerer != nil {
		registerer.MustRegister(
			m.acceptedTransactions,
			m.rejectedTransactions,
			m.createdBlocks,
			m.pooledTransactions,
			m.utxoSetSize,
			m.currentSlot,
		)
	}

	return m
}

func (m *metrics) transactionRejected(err error) {
	m.rejectedTransactions.WithLabelValues(ledgerstate.CategoryOf(err).String()).Inc()
}

package emulator

import (
	"github.com/iotaledger/hive.go/logger"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ledgersim/ledgersim/packages/ledgerstate"
)

// region Options //////////////////////////////////////////////////////////////////////////////////////////////////////

// WithLogger is an Option for the Emulator that allows to define the logger that is used.
func WithLogger(log *logger.Logger) Option {
	return func(options *options) {
		options.logger = log
	}
}

// WithFeePolicy is an Option for the Emulator that defines the FeePolicy of the TxValidator.
func WithFeePolicy(feePolicy ledgerstate.FeePolicy) Option {
	return func(options *options) {
		options.feePolicy = feePolicy
	}
}

// WithMetricsRegisterer is an Option for the Emulator that registers its metrics at the given prometheus.Registerer.
func WithMetricsRegisterer(registerer prometheus.Registerer) Option {
	return func(options *options) {
		options.metricsRegisterer = registerer
	}
}

// WithStartSlot is an Option for the Emulator that defines the Slot that the Emulator starts at.
func WithStartSlot(slot ledgerstate.Slot) Option {
	return func(options *options) {
		options.startSlot = slot
	}
}

// WithRetainedBlocks is an Option for the Emulator that defines how many Blocks are kept by PruneBlocks.
func WithRetainedBlocks(retainedBlocks int) Option {
	return func(options *options) {
		options.retainedBlocks = retainedBlocks
	}
}

// Option represents the return type of optional parameters that can be handed into the constructor of the Emulator
// to configure its behavior.
type Option func(*options)

// options is a container for all configurable parameters of the Emulator.
type options struct {
	logger            *logger.Logger
	feePolicy         ledgerstate.FeePolicy
	metricsRegisterer prometheus.Registerer
	startSlot         ledgerstate.Slot
	retainedBlocks    int
}

// defaultOptions contains the default settings of the Emulator.
var defaultOptions = options{
	feePolicy:      ledgerstate.ZeroFeePolicy,
	retainedBlocks: 1000,
}

// newOptions returns the options that result from applying the given Options to the defaultOptions.
func newOptions(option ...Option) (new *options) {
	return (&options{
		feePolicy:      defaultOptions.feePolicy,
		retainedBlocks: defaultOptions.retainedBlocks,
	}).apply(option...)
}

// apply modifies the options object by overriding the given parameters.
func (o *options) apply(options ...Option) (self *options) {
	for _, option := range options {
		option(o)
	}

	if o.logger == nil {
		o.logger = logger.NewExampleLogger("Emulator")
	}

	return o
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

package ledgerstate

// region WithFeePolicy ////////////////////////////////////////////////////////////////////////////////////////////////

// WithFeePolicy is an Option for the TxValidator that allows to configure the minimum fee of Transactions (the
// default is to accept any fee).
func WithFeePolicy(feePolicy FeePolicy) Option {
	return func(options *options) {
		options.feePolicy = feePolicy
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Option ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Option represents the return type of optional parameters that can be handed into the constructor of the TxValidator
// to configure its behavior.
type Option func(*options)

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region options //////////////////////////////////////////////////////////////////////////////////////////////////////

// options is a container for all configurable parameters of a TxValidator.
type options struct {
	// feePolicy contains the rule that computes the minimum fee of a Transaction.
	feePolicy FeePolicy
}

// defaultOptions contains the default configuration parameters of the TxValidator.
var defaultOptions = options{
	feePolicy: ZeroFeePolicy,
}

// newOptions returns a new options object that corresponds to the handed in options and which is derived from the
// default options.
func newOptions(option ...Option) (new *options) {
	clonedDefaultOptions := defaultOptions
	return clonedDefaultOptions.apply(option...)
}

// apply modifies the options object by overriding the handed in options.
func (o *options) apply(options ...Option) (self *options) {
	for _, option := range options {
		option(o)
	}
	return o
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

package typed

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/ledgersim/ledgersim/packages/ledgerstate"
)

// MintingPolicy binds a redeemer type R to an untyped MintingPolicy.
type MintingPolicy[R any] struct {
	policy        *ledgerstate.MintingPolicy
	redeemerCodec Codec[R]
}

// NewMintingPolicy wraps an untyped MintingPolicy.
func NewMintingPolicy[R any](policy *ledgerstate.MintingPolicy, redeemerCodec Codec[R]) *MintingPolicy[R] {
	return &MintingPolicy[R]{
		policy:        policy,
		redeemerCodec: redeemerCodec,
	}
}

// NewMintingPolicyFunc registers a typed check in the ScriptRegistry and returns the corresponding MintingPolicy.
func NewMintingPolicyFunc[R any](registry *ledgerstate.ScriptRegistry, name string, redeemerCodec Codec[R], check func(redeemer R, ctx *ledgerstate.ScriptContext) error) *MintingPolicy[R] {
	return NewMintingPolicy(registry.RegisterMintingPolicy(name, func(arguments *ledgerstate.ScriptArguments) error {
		redeemer, err := redeemerCodec.Decode(arguments.Redeemer)
		if err != nil {
			return errors.Errorf("invalid redeemer: %w", err)
		}

		return check(redeemer, arguments.Context)
	}), redeemerCodec)
}

// Untyped returns the underlying MintingPolicy.
func (m *MintingPolicy[R]) Untyped() *ledgerstate.MintingPolicy {
	return m.policy
}

// Hash returns the MintingPolicyHash of the compiled script.
func (m *MintingPolicy[R]) Hash() ledgerstate.MintingPolicyHash {
	return m.policy.Hash()
}

// CurrencySymbol returns the CurrencySymbol of the assets that are controlled by the MintingPolicy.
func (m *MintingPolicy[R]) CurrencySymbol() ledgerstate.CurrencySymbol {
	return m.policy.CurrencySymbol()
}

// EncodeRedeemer translates a typed redeemer into a Redeemer.
func (m *MintingPolicy[R]) EncodeRedeemer(redeemer R) (ledgerstate.Redeemer, error) {
	encoded, err := m.redeemerCodec.Encode(redeemer)
	if err != nil {
		return nil, errors.Errorf("failed to encode redeemer for %s: %w", m.Hash(), err)
	}

	return encoded, nil
}

// String returns a human readable version of the MintingPolicy.
func (m *MintingPolicy[R]) String() string {
	return stringify.Struct("TypedMintingPolicy",
		stringify.StructField("currencySymbol", m.CurrencySymbol()),
		stringify.StructField("redeemerType", typeName[R]()),
	)
}

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

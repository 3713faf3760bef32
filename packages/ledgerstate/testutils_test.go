package ledgerstate

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/crypto/ed25519"
)

type wallet struct {
	keyPair ed25519.KeyPair
	address *ED25519Address
}

func (w wallet) pubKeyHash() PubKeyHash {
	return w.address.PubKeyHash()
}

func createWallets(n int) []wallet {
	wallets := make([]wallet, n)
	for i := 0; i < n; i++ {
		kp := ed25519.GenerateKeyPair()
		wallets[i] = wallet{
			kp,
			NewED25519Address(kp.PublicKey),
		}
	}
	return wallets
}

// payment builds a signed Transaction that moves the Output to the given Address and pays the rest as fee.
func payment(from wallet, outputID OutputID, to Address, amount int64, fee uint64) *Transaction {
	return UnitTransaction().
		WithInput(NewPubKeyInput(outputID)).
		WithOutput(NewOutput(to, LovelaceValue(amount))).
		WithFee(fee).
		Sign(from.keyPair)
}

// guessingGame registers a Validator that accepts if the Redeemer equals the Datum.
func guessingGame(registry *ScriptRegistry) *Validator {
	return registry.RegisterValidator("guessing-game", func(arguments *ScriptArguments) error {
		if string(arguments.Datum) != string(arguments.Redeemer) {
			return errors.New("wrong guess")
		}

		return nil
	})
}

package ledgerstate

import (
	"sync"

	"github.com/cockroachdb/errors"
)

// ScriptFunc is the Go implementation of a Script. It returns nil to accept the arguments.
type ScriptFunc func(arguments *ScriptArguments) error

// ScriptRegistry is a ScriptEvaluator that runs Go functions in place of compiled Scripts. Every registered function
// gets a Script whose bytes identify it, so its hash, Address and CurrencySymbol behave like those of a real Script.
type ScriptRegistry struct {
	scripts      map[ScriptHash]ScriptFunc
	scriptsMutex sync.RWMutex
}

// NewScriptRegistry returns an empty ScriptRegistry.
func NewScriptRegistry() *ScriptRegistry {
	return &ScriptRegistry{
		scripts: make(map[ScriptHash]ScriptFunc),
	}
}

// Register stores the function under the Script that is derived from the given name and returns that Script.
// Registering the same name twice replaces the function.
func (s *ScriptRegistry) Register(name string, scriptFunc ScriptFunc) Script {
	script := Script("go-script:" + name)
	s.RegisterScript(script, scriptFunc)

	return script
}

// RegisterScript stores the function as the implementation of the given Script.
func (s *ScriptRegistry) RegisterScript(script Script, scriptFunc ScriptFunc) {
	s.scriptsMutex.Lock()
	defer s.scriptsMutex.Unlock()

	s.scripts[script.Hash()] = scriptFunc
}

// RegisterValidator registers the function and returns it as a Validator.
func (s *ScriptRegistry) RegisterValidator(name string, scriptFunc ScriptFunc) *Validator {
	return NewValidator(s.Register("validator:"+name, scriptFunc))
}

// RegisterMintingPolicy registers the function and returns it as a MintingPolicy.
func (s *ScriptRegistry) RegisterMintingPolicy(name string, scriptFunc ScriptFunc) *MintingPolicy {
	return NewMintingPolicy(s.Register("policy:"+name, scriptFunc))
}

// Contains returns true if a function is registered for the Script with the given hash.
func (s *ScriptRegistry) Contains(scriptHash ScriptHash) bool {
	s.scriptsMutex.RLock()
	defer s.scriptsMutex.RUnlock()

	_, exists := s.scripts[scriptHash]

	return exists
}

// EvaluateScript runs the function that is registered for the Script. Unknown Scripts and panicking functions are
// rejected.
func (s *ScriptRegistry) EvaluateScript(script Script, arguments *ScriptArguments) (err error) {
	s.scriptsMutex.RLock()
	scriptFunc, exists := s.scripts[script.Hash()]
	s.scriptsMutex.RUnlock()

	if !exists {
		return errors.Errorf("unknown script %s", script.Hash().Base58())
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("script panicked: %v", r)
		}
	}()

	return scriptFunc(arguments)
}

// code contract (make sure the struct implements all required methods)
var _ ScriptEvaluator = &ScriptRegistry{}

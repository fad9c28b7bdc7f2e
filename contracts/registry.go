/*
registry.go - Contract variant registration and lookup

PURPOSE:
  Maps contract type codes to their variant implementations. Each variant
  registers itself on init(), so the runner and the term-sheet factory can
  dispatch on the type code alone.

USAGE:
  // In bullet.go
  func init() {
      register(Bullet{})
  }

  // In the runner
  variant, err := LookupContract(attrs.ContractType)

SEE ALSO:
  - contract.go: the Contract interface variants implement
  - runner.go: the dispatch site
*/
package contracts

import (
	"fmt"
	"sync"
)

// =============================================================================
// VARIANT REGISTRY
// =============================================================================

var (
	variantRegistry = make(map[ContractType]Contract)
	registryMu      sync.RWMutex
)

// register adds a variant to the registry. Called from the variant files'
// init() functions; later registrations for the same type win, which lets
// tests install instrumented variants.
func register(c Contract) {
	registryMu.Lock()
	defer registryMu.Unlock()
	variantRegistry[c.Type()] = c
}

// LookupContract finds the variant implementing the given type code.
func LookupContract(t ContractType) (Contract, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	c, ok := variantRegistry[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownContractType, t)
	}
	return c, nil
}

// RegisteredTypes lists the contract types with a live variant.
func RegisteredTypes() []ContractType {
	registryMu.RLock()
	defer registryMu.RUnlock()
	types := make([]ContractType, 0, len(variantRegistry))
	for t := range variantRegistry {
		types = append(types, t)
	}
	return types
}

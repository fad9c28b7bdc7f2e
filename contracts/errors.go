package contracts

import (
	"errors"
	"fmt"

	"github.com/warp/contract-engine/riskfactor"
	"github.com/warp/contract-engine/schedule"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// Sentinel errors for the contract engine. Wrap them with context at the
// call site; match them with errors.Is at the boundary.
var (
	// ErrConfiguration indicates an invalid attribute combination.
	ErrConfiguration = errors.New("invalid contract configuration")

	// ErrUnknownContractType indicates a contract type no variant is
	// registered for.
	ErrUnknownContractType = errors.New("unknown contract type")
)

// ConfigurationError reports which attribute made the terms unusable.
type ConfigurationError struct {
	Attribute string
	Reason    string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConfiguration, e.Attribute, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// EventError wraps a failure while processing one event, so callers see
// which event of which contract broke the fold.
type EventError struct {
	ContractID string
	Event      ContractEvent
	Err        error
}

func (e *EventError) Error() string {
	return fmt.Sprintf("contract %s: event %s at %s: %v",
		e.ContractID, e.Event.Type, e.Event.Time.Format("2006-01-02"), e.Err)
}

func (e *EventError) Unwrap() error {
	return e.Err
}

// =============================================================================
// ERROR CLASSIFICATION
// =============================================================================

// IsConfigurationError reports whether err stems from invalid terms.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsScheduleError reports whether err stems from an unparseable cycle.
func IsScheduleError(err error) bool {
	return errors.Is(err, schedule.ErrInvalidCycle)
}

// IsObservationNotFound reports whether err means a market observation
// was missing, as opposed to the observer itself failing.
func IsObservationNotFound(err error) bool {
	return riskfactor.IsNotFound(err)
}

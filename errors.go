package deepagent

import "errors"

// Sentinel errors for workspace tools and delegation. Tools never surface
// these to the model loop directly; they are wrapped into descriptive
// string results at the tool boundary. Tests and callers can match
// them with errors.Is.
var (
	ErrNotFound         = errors.New("deepagent: not found")
	ErrAmbiguousMatch   = errors.New("deepagent: ambiguous match")
	ErrRange            = errors.New("deepagent: offset out of range")
	ErrDelegationFailed = errors.New("deepagent: delegation failed")
)

// Sentinel errors from the run loop.
var (
	ErrMaxTurns        = errors.New("deepagent: max turns reached")
	ErrBudgetExhausted = errors.New("deepagent: budget exhausted")
)

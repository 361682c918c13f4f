package errors

import "fmt"

// Meta key recording which game rejection produced an error. The gRPC codes are
// shared with generic failures, so handlers use the reason to pick a message.
const MetaReason = "reason"

// Rejection reasons attached under MetaReason
const (
	ReasonInsufficientResources = "insufficient_resources"
	ReasonInvalidTarget         = "invalid_target"
	ReasonAlreadyActive         = "already_active"
	ReasonIneligibleReplacement = "ineligible_replacement"
	ReasonTerminal              = "terminal"
)

// InsufficientResources rejects an action because an inventory count is below
// the requirement. No state is mutated.
func InsufficientResources(format string, args ...interface{}) *Error {
	return New(CodeResourceExhausted, fmt.Sprintf(format, args...)).
		WithMeta(MetaReason, ReasonInsufficientResources)
}

// InvalidTarget rejects an action naming an unknown boss, slot, enchantment or item.
func InvalidTarget(format string, args ...interface{}) *Error {
	return New(CodeNotFound, fmt.Sprintf(format, args...)).
		WithMeta(MetaReason, ReasonInvalidTarget)
}

// AlreadyActive rejects re-activating an elixir or starting a busy forge slot.
func AlreadyActive(format string, args ...interface{}) *Error {
	return New(CodeAlreadyExists, fmt.Sprintf(format, args...)).
		WithMeta(MetaReason, ReasonAlreadyActive)
}

// IneligibleReplacement rejects overwriting a mythical enchantment with a lower tier.
func IneligibleReplacement(format string, args ...interface{}) *Error {
	return New(CodeFailedPrecondition, fmt.Sprintf(format, args...)).
		WithMeta(MetaReason, ReasonIneligibleReplacement)
}

// Terminal rejects an action against a finished battle or raid.
func Terminal(format string, args ...interface{}) *Error {
	return New(CodeAborted, fmt.Sprintf(format, args...)).
		WithMeta(MetaReason, ReasonTerminal)
}

// IsInsufficientResources checks for an InsufficientResources rejection
func IsInsufficientResources(err error) bool {
	return GetCode(err) == CodeResourceExhausted
}

// IsInvalidTarget checks for an InvalidTarget rejection
func IsInvalidTarget(err error) bool {
	return hasReason(err, ReasonInvalidTarget)
}

// IsAlreadyActive checks for an AlreadyActive rejection
func IsAlreadyActive(err error) bool {
	return GetCode(err) == CodeAlreadyExists && hasReason(err, ReasonAlreadyActive)
}

// IsIneligibleReplacement checks for an IneligibleReplacement rejection
func IsIneligibleReplacement(err error) bool {
	return hasReason(err, ReasonIneligibleReplacement)
}

// IsTerminal checks for a Terminal rejection
func IsTerminal(err error) bool {
	return GetCode(err) == CodeAborted
}

func hasReason(err error, reason string) bool {
	meta := GetMeta(err)
	if meta == nil {
		return false
	}
	r, ok := meta[MetaReason].(string)
	return ok && r == reason
}

package encounter

import "errors"

// The error taxonomy of the taming flow. Handlers convert every guard
// failure into one of these; nothing else escapes a single interaction.
var (
	// ErrNotFound means the encounter (or character) no longer exists.
	// The player has to start over with a fresh discovery.
	ErrNotFound = errors.New("encounter not found")

	// ErrUnauthorized means the acting user does not own the tracked
	// participant. No mutation happens.
	ErrUnauthorized = errors.New("not authorized to act on this encounter")

	// ErrResourceExhausted means stamina hit 0 when an action needed it.
	// The creature escapes and the encounter is deleted; this is normal
	// game flow, not a defect.
	ErrResourceExhausted = errors.New("stamina exhausted")

	// ErrInsufficientFunds means the token balance is below the required
	// cost. Retryable after acquiring funds; nothing is mutated.
	ErrInsufficientFunds = errors.New("insufficient tokens")

	// ErrUnsupportedConfiguration means the species has no trait or
	// generator data. Surfaced as "customization unavailable" and logged
	// as a data defect.
	ErrUnsupportedConfiguration = errors.New("no customization data for species")

	// ErrInvalidSelection means the input named an unknown action, item,
	// or option value. Rejected without mutation.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrGlideSpent means Glide was already used on this encounter.
	// Checked before any stamina debit.
	ErrGlideSpent = errors.New("glide already used this encounter")
)

package core

import "errors"

// Store-level failure classes. Handlers and the seeder branch on these with
// errors.Is; everything else wraps them with context.
var (
	// ErrConstraint marks a write that would break a uniqueness or
	// foreign-key rule. The store is unchanged when it is returned.
	ErrConstraint = errors.New("constraint violation")

	// ErrSchemaMismatch marks a seed dataset that names an entity or field
	// the schema does not declare. Non-fatal during seeding.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrUnavailable marks an unreachable store or a failed sub-query.
	// Fatal to the current request.
	ErrUnavailable = errors.New("store unavailable")
)

// Validation errors.
var (
	ErrEmptyName         = errors.New("empty name")
	ErrNameTooLong       = errors.New("name too long (max 200 characters)")
	ErrEmptyCategory     = errors.New("empty category")
	ErrInvalidEmail      = errors.New("invalid email")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInvalidRating     = errors.New("rating out of range")
	ErrInvalidTimestamp  = errors.New("invalid timestamp")
	ErrMissingProductRef = errors.New("missing product reference")
	ErrMissingSummaryRef = errors.New("missing expense summary reference")
)

// IsValidation reports whether err is one of the record validation errors,
// as opposed to a store failure.
func IsValidation(err error) bool {
	for _, v := range []error{
		ErrEmptyName, ErrNameTooLong, ErrEmptyCategory, ErrInvalidEmail,
		ErrInvalidAmount, ErrInvalidQuantity, ErrInvalidRating,
		ErrInvalidTimestamp, ErrMissingProductRef, ErrMissingSummaryRef,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

package tabq

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by this package wraps exactly one
// of these sentinels, so callers can classify failures with errors.Is.
var (
	// ErrValidation indicates a caller supplied an out-of-range offset or
	// limit, a malformed header override, or an unresolvable column key.
	ErrValidation = errors.New("tabq: invalid argument")

	// ErrStructure indicates the configured header row is absent or empty,
	// or the resolved header is not a flat list of unique non-empty names.
	ErrStructure = errors.New("tabq: structural error")

	// ErrCallback indicates a caller-supplied predicate or comparator
	// failed during evaluation. The underlying cause is wrapped and can be
	// recovered with errors.Unwrap or errors.As.
	ErrCallback = errors.New("tabq: callback failure")
)

// validationErrorf wraps ErrValidation with a formatted detail message.
func validationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// structureErrorf wraps ErrStructure with a formatted detail message.
func structureErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrStructure, fmt.Sprintf(format, args...))
}

// callbackError wraps a predicate or comparator failure so that both
// ErrCallback and the original cause match with errors.Is.
func callbackError(stage string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrCallback, stage, err)
}

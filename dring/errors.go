package dring

import "errors"

// Sentinel errors for substrate failures. Callers are expected to test
// with errors.Is; call sites wrap these with %w and context.
var (
	// ErrIncompatibleRings reports that two ring descriptors have no
	// common extension (pushout failure).
	ErrIncompatibleRings = errors.New("dring: incompatible rings")

	// ErrUnknownGenerator reports a name that resolves to neither a
	// plain generator nor a differential variable of the ring.
	ErrUnknownGenerator = errors.New("dring: unknown generator")

	// ErrDuplicateGenerator reports an attempt to adjoin a name the
	// ring already uses.
	ErrDuplicateGenerator = errors.New("dring: duplicate generator")

	// ErrNotDifferential reports a construction that needs a
	// differential base ring but received a plain one.
	ErrNotDifferential = errors.New("dring: ring is not differential")

	// ErrCoercion reports an element that cannot be reinterpreted in
	// the requested ring.
	ErrCoercion = errors.New("dring: element does not coerce")
)

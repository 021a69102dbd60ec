package pkg

import "errors"

var (
	// ErrNilDevice is returned when a nil device is registered.
	ErrNilDevice = errors.New("nil device")

	// ErrAlreadyRegistered is returned when a device is registered twice.
	ErrAlreadyRegistered = errors.New("device already registered")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrNoMemory is returned when no allocator can satisfy a request.
	ErrNoMemory = errors.New("insufficient memory")

	// ErrInvalidSize is returned for zero-sized or overflowing requests.
	ErrInvalidSize = errors.New("invalid allocation size")

	// ErrTooLarge is returned when a request exceeds the arena capacity.
	ErrTooLarge = errors.New("allocation exceeds capacity")

	// ErrMisaligned indicates an internal alignment check failed.
	ErrMisaligned = errors.New("misaligned block")

	// ErrUnknownPointer is returned when freeing an address the allocator
	// does not own or has already released.
	ErrUnknownPointer = errors.New("unknown pointer")
)

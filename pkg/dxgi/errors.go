package dxgi

import (
	"errors"
	"fmt"
)

var (
	// ErrEnumerationUnavailable is returned when the graphics enumeration
	// root (the DXGI factory) cannot be created.
	ErrEnumerationUnavailable = errors.New("dxgi: enumeration unavailable")

	// ErrNotFound matches any *NotFoundError.
	ErrNotFound = errors.New("dxgi: output not found")

	// ErrNoMoreItems ends an adapter or output listing. Factory and Adapter
	// implementations return it once the index runs past the last item.
	ErrNoMoreItems = errors.New("dxgi: no more items")

	// ErrDescriptorUnavailable marks an output whose descriptor could not be
	// read. Such outputs are skipped, never surfaced as a call failure.
	ErrDescriptorUnavailable = errors.New("dxgi: output descriptor unavailable")
)

// NotFoundError is returned by Resolve when no output carries the queried
// device name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("dxgi: no output named %q", e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

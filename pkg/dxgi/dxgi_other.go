//go:build !windows

package dxgi

import "fmt"

// openPlatformFactory always fails: DXGI exists only on Windows. Use
// WithFactory with a Simulator elsewhere.
func openPlatformFactory() (Factory, error) {
	return nil, fmt.Errorf("%w: DXGI requires Windows", ErrEnumerationUnavailable)
}

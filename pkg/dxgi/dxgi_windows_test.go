//go:build windows

package dxgi

import (
	"errors"
	"testing"
	"unsafe"
)

func TestOutputDescLayout(t *testing.T) {
	want := uintptr(88) + unsafe.Sizeof(uintptr(0))
	if got := unsafe.Sizeof(dxgiOutputDesc{}); got != want {
		t.Fatalf("sizeof(dxgiOutputDesc) = %d, want %d", got, want)
	}
}

func TestEnumErrMapsNotFound(t *testing.T) {
	if err := enumErr(hresult(dxgiErrNotFound)); !errors.Is(err, ErrNoMoreItems) {
		t.Fatalf("enumErr(DXGI_ERROR_NOT_FOUND) = %v, want ErrNoMoreItems", err)
	}
	other := hresult(0x887A0005)
	if err := enumErr(other); !errors.Is(err, other) {
		t.Fatalf("enumErr(0x887A0005) = %v, want it unchanged", err)
	}
}

// Runs against the real DXGI stack. Hosts without a display driver get an
// empty list, which is fine; only the invariants are checked.
func TestPlatformEnumerate(t *testing.T) {
	outputs, err := Enumerate()
	if errors.Is(err, ErrEnumerationUnavailable) {
		t.Skipf("DXGI unavailable: %v", err)
	}
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	for i, o := range outputs {
		if o.Width <= 0 || o.Height <= 0 {
			t.Errorf("output %d has size %dx%d", i, o.Width, o.Height)
		}
		if o.Primary != (o.X == 0 && o.Y == 0) {
			t.Errorf("output %d primary=%v at (%d,%d)", i, o.Primary, o.X, o.Y)
		}
		a, oi, err := Resolve(o.DeviceName)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", o.DeviceName, err)
		}
		if first, _ := Find(outputs, o.DeviceName); a != first.AdapterIndex || oi != first.OutputIndex {
			t.Errorf("Resolve(%q) = (%d, %d), want (%d, %d)", o.DeviceName, a, oi, first.AdapterIndex, first.OutputIndex)
		}
	}
}

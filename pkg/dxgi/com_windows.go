//go:build windows

package dxgi

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
)

const (
	sFalse          = 0x00000001
	rpcEChangedMode = 0x80010106
	vtblRelease     = 2
)

// hresult is a failing COM HRESULT.
type hresult uint32

func (h hresult) Error() string {
	return fmt.Sprintf("HRESULT 0x%08X", uint32(h))
}

// comCall invokes the COM vtable method at vtableIdx on obj, which points
// to an interface (pointer to pointer to vtable).
func comCall(obj uintptr, vtableIdx int, args ...uintptr) (uintptr, error) {
	vtablePtr := *(*uintptr)(unsafe.Pointer(obj))
	fnPtr := *(*uintptr)(unsafe.Pointer(vtablePtr + uintptr(vtableIdx)*unsafe.Sizeof(uintptr(0))))
	allArgs := make([]uintptr, 0, 1+len(args))
	allArgs = append(allArgs, obj)
	allArgs = append(allArgs, args...)
	ret, _, _ := syscall.SyscallN(fnPtr, allArgs...)
	if int32(ret) < 0 {
		return ret, fmt.Errorf("COM vtable[%d]: %w", vtableIdx, hresult(ret))
	}
	return ret, nil
}

// comRelease calls IUnknown::Release.
func comRelease(obj uintptr) {
	if obj != 0 {
		comCall(obj, vtblRelease)
	}
}

// comInit joins the calling thread to the multithreaded apartment. The
// returned func undoes it. A thread already in a single-threaded apartment
// is used as is and left alone on the way out.
func comInit() (func(), error) {
	err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED)
	if err == nil {
		return ole.CoUninitialize, nil
	}
	var oleErr *ole.OleError
	if !errors.As(err, &oleErr) {
		return nil, fmt.Errorf("CoInitializeEx: %w", err)
	}
	switch uint32(oleErr.Code()) {
	case sFalse:
		return ole.CoUninitialize, nil
	case rpcEChangedMode:
		return func() {}, nil
	default:
		return nil, fmt.Errorf("CoInitializeEx: %w", hresult(oleErr.Code()))
	}
}

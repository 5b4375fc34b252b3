//go:build windows

package dxgi

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"
)

var (
	dxgiDLL                = windows.NewLazySystemDLL("dxgi.dll")
	procCreateDXGIFactory1 = dxgiDLL.NewProc("CreateDXGIFactory1")

	iidIDXGIFactory1 = ole.NewGUID("{770aae78-f26f-4dba-a829-253c83d1b387}")
)

// DXGI COM vtable indices. IUnknown takes 0-2 and IDXGIObject 3-6.
const (
	dxgiFactory1EnumAdapters1 = 12 // IDXGIFactory1, after IDXGIFactory's 7-11
	dxgiAdapterEnumOutputs    = 7  // IDXGIAdapter
	dxgiOutputGetDesc         = 7  // IDXGIOutput

	dxgiErrNotFound = 0x887A0002
)

// dxgiOutputDesc matches DXGI_OUTPUT_DESC (96 bytes on amd64):
//
//	WCHAR DeviceName[32]     64 bytes
//	RECT  DesktopCoordinates 16 bytes
//	BOOL  AttachedToDesktop   4 bytes
//	DXGI_MODE_ROTATION        4 bytes
//	HMONITOR                  pointer
type dxgiOutputDesc struct {
	DeviceName        [32]uint16
	Left              int32
	Top               int32
	Right             int32
	Bottom            int32
	AttachedToDesktop int32
	Rotation          uint32
	Monitor           uintptr
}

// openPlatformFactory creates an IDXGIFactory1. COM state is per thread, so
// the calling goroutine stays locked to its thread until the factory is
// released.
func openPlatformFactory() (Factory, error) {
	runtime.LockOSThread()

	uninit, err := comInit()
	if err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("%w: %w", ErrEnumerationUnavailable, err)
	}
	done := func() {
		uninit()
		runtime.UnlockOSThread()
	}

	if err := procCreateDXGIFactory1.Find(); err != nil {
		done()
		return nil, fmt.Errorf("%w: %w", ErrEnumerationUnavailable, err)
	}

	var factory uintptr
	hr, _, _ := procCreateDXGIFactory1.Call(
		uintptr(unsafe.Pointer(iidIDXGIFactory1)),
		uintptr(unsafe.Pointer(&factory)),
	)
	if int32(hr) < 0 || factory == 0 {
		done()
		return nil, fmt.Errorf("%w: CreateDXGIFactory1: %w", ErrEnumerationUnavailable, hresult(hr))
	}
	return &comFactory{ptr: factory, done: done}, nil
}

// enumErr maps DXGI_ERROR_NOT_FOUND to ErrNoMoreItems.
func enumErr(err error) error {
	if errors.Is(err, hresult(dxgiErrNotFound)) {
		return ErrNoMoreItems
	}
	return err
}

type comFactory struct {
	ptr  uintptr // IDXGIFactory1
	done func()
}

func (f *comFactory) EnumAdapter(index int) (Adapter, error) {
	var adapter uintptr
	if _, err := comCall(f.ptr, dxgiFactory1EnumAdapters1,
		uintptr(uint32(index)),
		uintptr(unsafe.Pointer(&adapter)),
	); err != nil {
		return nil, enumErr(err)
	}
	return &comAdapter{ptr: adapter}, nil
}

func (f *comFactory) Release() {
	comRelease(f.ptr)
	f.ptr = 0
	if f.done != nil {
		f.done()
		f.done = nil
	}
}

type comAdapter struct {
	ptr uintptr // IDXGIAdapter1
}

func (a *comAdapter) EnumOutput(index int) (OutputHandle, error) {
	var output uintptr
	if _, err := comCall(a.ptr, dxgiAdapterEnumOutputs,
		uintptr(uint32(index)),
		uintptr(unsafe.Pointer(&output)),
	); err != nil {
		return nil, enumErr(err)
	}
	return &comOutput{ptr: output}, nil
}

func (a *comAdapter) Release() {
	comRelease(a.ptr)
	a.ptr = 0
}

type comOutput struct {
	ptr uintptr // IDXGIOutput
}

func (o *comOutput) Desc() (OutputDesc, error) {
	var desc dxgiOutputDesc
	if _, err := comCall(o.ptr, dxgiOutputGetDesc, uintptr(unsafe.Pointer(&desc))); err != nil {
		return OutputDesc{}, fmt.Errorf("IDXGIOutput::GetDesc: %w", err)
	}
	return OutputDesc{
		DeviceName:        windows.UTF16ToString(desc.DeviceName[:]),
		Left:              desc.Left,
		Top:               desc.Top,
		Right:             desc.Right,
		Bottom:            desc.Bottom,
		AttachedToDesktop: desc.AttachedToDesktop != 0,
	}, nil
}

func (o *comOutput) Release() {
	comRelease(o.ptr)
	o.ptr = 0
}

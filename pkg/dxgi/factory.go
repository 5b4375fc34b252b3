package dxgi

// Factory is the root of a graphics enumeration (IDXGIFactory1 on Windows).
// EnumAdapter returns ErrNoMoreItems once index is past the last adapter.
type Factory interface {
	EnumAdapter(index int) (Adapter, error)
	Release()
}

// Adapter is one graphics adapter. EnumOutput returns ErrNoMoreItems once
// index is past the adapter's last output.
type Adapter interface {
	EnumOutput(index int) (OutputHandle, error)
	Release()
}

// OutputHandle is one output of an adapter.
type OutputHandle interface {
	Desc() (OutputDesc, error)
	Release()
}

// OutputDesc mirrors the parts of DXGI_OUTPUT_DESC the enumerator uses.
type OutputDesc struct {
	DeviceName        string
	Left              int32
	Top               int32
	Right             int32
	Bottom            int32
	AttachedToDesktop bool
}

// FactoryFunc opens a new Factory. The enumerator calls it once per pass
// and releases the result before returning.
type FactoryFunc func() (Factory, error)

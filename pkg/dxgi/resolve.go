package dxgi

import "strings"

// Resolve maps a device name to its (adapter, output) index pair using the
// platform factory.
func Resolve(name string) (adapterIndex, outputIndex int, err error) {
	return defaultEnumerator.Resolve(name)
}

// Resolve runs a fresh enumeration and returns the indices of the first
// output whose device name matches name, ignoring case. A miss yields a
// *NotFoundError; a failed enumeration yields that failure instead.
func (e *Enumerator) Resolve(name string) (adapterIndex, outputIndex int, err error) {
	outputs, err := e.Enumerate()
	if err != nil {
		return 0, 0, err
	}
	out, ok := Find(outputs, name)
	if !ok {
		return 0, 0, &NotFoundError{Name: name}
	}
	return out.AdapterIndex, out.OutputIndex, nil
}

// Find returns the first output in outputs whose device name equals name
// case-insensitively. Only whole names match.
func Find(outputs []Output, name string) (Output, bool) {
	for _, o := range outputs {
		if strings.EqualFold(o.DeviceName, name) {
			return o, true
		}
	}
	return Output{}, false
}

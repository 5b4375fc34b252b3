// Package dxgi enumerates the display outputs attached to the machine's
// graphics adapters and maps OS device names to the (adapter, output) index
// pair DXGI-based capture APIs expect.
//
// Every call re-reads the live topology. Nothing is cached.
package dxgi

import "fmt"

// Output describes one display output as seen during a single enumeration.
type Output struct {
	AdapterIndex int    `json:"adapterIndex" yaml:"adapterIndex"`
	OutputIndex  int    `json:"outputIndex" yaml:"outputIndex"`
	DeviceName   string `json:"deviceName" yaml:"deviceName"`
	Width        int    `json:"width" yaml:"width"`
	Height       int    `json:"height" yaml:"height"`
	X            int    `json:"x" yaml:"x"`
	Y            int    `json:"y" yaml:"y"`
	Primary      bool   `json:"primary" yaml:"primary"`
}

func (o Output) String() string {
	primary := ""
	if o.Primary {
		primary = " [primary]"
	}
	return fmt.Sprintf("[%d:%d] %s %dx%d%s", o.AdapterIndex, o.OutputIndex, o.DeviceName, o.Width, o.Height, primary)
}

// SkippedOutput records an output that was listed by the OS but left out of
// the result.
type SkippedOutput struct {
	AdapterIndex int    `json:"adapterIndex" yaml:"adapterIndex"`
	OutputIndex  int    `json:"outputIndex" yaml:"outputIndex"`
	Reason       string `json:"reason" yaml:"reason"`
}

// Scan is the result of one enumeration pass, including the outputs that
// were skipped. Skipped is diagnostic only.
type Scan struct {
	Outputs []Output        `json:"outputs" yaml:"outputs"`
	Skipped []SkippedOutput `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Primary returns the first output flagged as primary.
func (s Scan) Primary() (Output, bool) {
	for _, o := range s.Outputs {
		if o.Primary {
			return o, true
		}
	}
	return Output{}, false
}

// isPrimary reports whether a desktop rectangle starting at (left, top) is
// the primary display. Windows places the primary display at the origin of
// the virtual desktop, so this is the only signal the output descriptor
// needs to carry.
func isPrimary(left, top int32) bool {
	return left == 0 && top == 0
}

package dxgi

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const twoAdapterYAML = `
adapters:
  - name: GPU 0
    outputs:
      - deviceName: \\.\DISPLAY1
        left: 0
        top: 0
        right: 1920
        bottom: 1080
      - deviceName: \\.\DISPLAY2
        left: 1920
        top: 0
        right: 3840
        bottom: 1080
  - name: GPU 1
    outputs:
      - deviceName: \\.\DISPLAY3
        left: 0
        top: 1080
        right: 1280
        bottom: 1920
`

func TestParseTopology(t *testing.T) {
	topo, err := ParseTopology([]byte(twoAdapterYAML))
	if err != nil {
		t.Fatalf("ParseTopology: %v", err)
	}
	if len(topo.Adapters) != 2 {
		t.Fatalf("got %d adapters, want 2", len(topo.Adapters))
	}
	if got := topo.Adapters[0].Outputs[1]; got.DeviceName != `\\.\DISPLAY2` || got.Left != 1920 || got.Right != 3840 {
		t.Fatalf("adapter 0 output 1 = %+v", got)
	}

	got, err := newTestEnumerator(NewSimulator(topo)).Enumerate()
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	want, _ := newTestEnumerator(NewSimulator(twoAdapterTopology())).Enumerate()
	if len(got) != len(want) {
		t.Fatalf("got %d outputs, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("output %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParseTopologyRejectsMalformedYAML(t *testing.T) {
	if _, err := ParseTopology([]byte("adapters: [")); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoadTopology(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topology.yaml")
	if err := os.WriteFile(path, []byte(twoAdapterYAML), 0600); err != nil {
		t.Fatal(err)
	}
	topo, err := LoadTopology(path)
	if err != nil {
		t.Fatalf("LoadTopology: %v", err)
	}
	if len(topo.Adapters) != 2 {
		t.Fatalf("got %d adapters, want 2", len(topo.Adapters))
	}

	if _, err := LoadTopology(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}

func TestSimulatorReleaseIsIdempotent(t *testing.T) {
	sim := NewSimulator(twoAdapterTopology())
	f, err := sim.Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	a, err := f.EnumAdapter(0)
	if err != nil {
		t.Fatalf("EnumAdapter: %v", err)
	}
	if n := sim.LiveHandles(); n != 2 {
		t.Fatalf("LiveHandles = %d, want 2", n)
	}
	a.Release()
	a.Release()
	f.Release()
	if n := sim.LiveHandles(); n != 0 {
		t.Fatalf("LiveHandles = %d, want 0", n)
	}
	if _, err := f.EnumAdapter(2); !errors.Is(err, ErrNoMoreItems) {
		t.Fatalf("EnumAdapter past the end: %v, want ErrNoMoreItems", err)
	}
}

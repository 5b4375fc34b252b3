package dxgi

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// Topology is an in-memory adapter/output tree that can stand in for the
// OS graphics stack. It is loadable from YAML:
//
//	adapters:
//	  - name: GPU 0
//	    outputs:
//	      - deviceName: \\.\DISPLAY1
//	        left: 0
//	        top: 0
//	        right: 1920
//	        bottom: 1080
type Topology struct {
	// OpenError makes factory creation fail with this message.
	OpenError string       `yaml:"openError,omitempty"`
	Adapters  []SimAdapter `yaml:"adapters"`
}

// SimAdapter is one simulated adapter.
type SimAdapter struct {
	Name string `yaml:"name,omitempty"`
	// EnumError makes EnumAdapter fail for this index.
	EnumError string      `yaml:"enumError,omitempty"`
	Outputs   []SimOutput `yaml:"outputs,omitempty"`
}

// SimOutput is one simulated output.
type SimOutput struct {
	DeviceName string `yaml:"deviceName"`
	Left       int32  `yaml:"left"`
	Top        int32  `yaml:"top"`
	Right      int32  `yaml:"right"`
	Bottom     int32  `yaml:"bottom"`
	Detached   bool   `yaml:"detached,omitempty"`
	// EnumError makes EnumOutput fail for this index.
	EnumError string `yaml:"enumError,omitempty"`
	// DescError makes Desc fail for this output.
	DescError string `yaml:"descError,omitempty"`
}

// ParseTopology decodes a YAML topology.
func ParseTopology(data []byte) (Topology, error) {
	var t Topology
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Topology{}, fmt.Errorf("parse topology: %w", err)
	}
	return t, nil
}

// LoadTopology reads a YAML topology file.
func LoadTopology(path string) (Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Topology{}, fmt.Errorf("read topology: %w", err)
	}
	return ParseTopology(data)
}

// Simulator serves a Topology through the Factory interfaces and counts
// the handles it has handed out and not yet had released.
type Simulator struct {
	mu       sync.RWMutex
	topology Topology

	live  atomic.Int64
	opens atomic.Int64
}

// NewSimulator returns a Simulator serving t.
func NewSimulator(t Topology) *Simulator {
	return &Simulator{topology: t}
}

// Replace swaps the served topology. Factories opened afterwards see the
// new tree; factories already open keep the old one.
func (s *Simulator) Replace(t Topology) {
	s.mu.Lock()
	s.topology = t
	s.mu.Unlock()
}

// LiveHandles is the number of factory, adapter and output handles not yet
// released.
func (s *Simulator) LiveHandles() int64 {
	return s.live.Load()
}

// Opens is the number of factories opened so far.
func (s *Simulator) Opens() int64 {
	return s.opens.Load()
}

// Open implements FactoryFunc.
func (s *Simulator) Open() (Factory, error) {
	s.mu.RLock()
	t := s.topology
	s.mu.RUnlock()

	if t.OpenError != "" {
		return nil, errors.New(t.OpenError)
	}
	s.opens.Add(1)
	return &simFactory{simHandle: s.acquire(), adapters: t.Adapters}, nil
}

func (s *Simulator) acquire() simHandle {
	s.live.Add(1)
	return simHandle{sim: s, released: new(atomic.Bool)}
}

type simHandle struct {
	sim      *Simulator
	released *atomic.Bool
}

func (h simHandle) Release() {
	if h.released.CompareAndSwap(false, true) {
		h.sim.live.Add(-1)
	}
}

type simFactory struct {
	simHandle
	adapters []SimAdapter
}

func (f *simFactory) EnumAdapter(index int) (Adapter, error) {
	if index < 0 || index >= len(f.adapters) {
		return nil, ErrNoMoreItems
	}
	a := f.adapters[index]
	if a.EnumError != "" {
		return nil, errors.New(a.EnumError)
	}
	return &simAdapter{simHandle: f.sim.acquire(), outputs: a.Outputs}, nil
}

type simAdapter struct {
	simHandle
	outputs []SimOutput
}

func (a *simAdapter) EnumOutput(index int) (OutputHandle, error) {
	if index < 0 || index >= len(a.outputs) {
		return nil, ErrNoMoreItems
	}
	o := a.outputs[index]
	if o.EnumError != "" {
		return nil, errors.New(o.EnumError)
	}
	return &simOutput{simHandle: a.sim.acquire(), out: o}, nil
}

type simOutput struct {
	simHandle
	out SimOutput
}

func (o *simOutput) Desc() (OutputDesc, error) {
	if o.out.DescError != "" {
		return OutputDesc{}, errors.New(o.out.DescError)
	}
	return OutputDesc{
		DeviceName:        o.out.DeviceName,
		Left:              o.out.Left,
		Top:               o.out.Top,
		Right:             o.out.Right,
		Bottom:            o.out.Bottom,
		AttachedToDesktop: !o.out.Detached,
	}, nil
}

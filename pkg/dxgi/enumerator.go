package dxgi

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/breeze-rmm/dxgi-probe/internal/logging"
)

// maxConsecutiveEnumFailures bounds how many adjacent adapter or output
// indices may fail (with anything other than ErrNoMoreItems) before a walk
// gives up on the rest of that level.
const maxConsecutiveEnumFailures = 4

// Enumerator walks a Factory's adapter/output tree. The zero value is not
// usable; construct with New.
type Enumerator struct {
	open   FactoryFunc
	logger *slog.Logger
}

// Option configures an Enumerator.
type Option func(*Enumerator)

// WithFactory replaces the platform factory, e.g. with a simulated
// topology.
func WithFactory(open FactoryFunc) Option {
	return func(e *Enumerator) {
		if open != nil {
			e.open = open
		}
	}
}

// WithLogger sets the logger used for absorbed per-adapter and per-output
// failures. Without it the enumerator logs through the process logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enumerator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New returns an Enumerator backed by the platform factory unless
// WithFactory says otherwise.
func New(opts ...Option) *Enumerator {
	e := &Enumerator{open: openPlatformFactory}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEnumerator = New()

func (e *Enumerator) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return logging.L("dxgi")
}

// Enumerate lists the outputs of the live topology using the platform
// factory.
func Enumerate() ([]Output, error) {
	return defaultEnumerator.Enumerate()
}

// Enumerate lists every readable output, ordered by adapter index and then
// output index. An empty result is not an error.
func (e *Enumerator) Enumerate() ([]Output, error) {
	scan, err := e.Scan()
	if err != nil {
		return nil, err
	}
	return scan.Outputs, nil
}

// Scan is Enumerate plus the list of outputs that were skipped.
func (e *Enumerator) Scan() (Scan, error) {
	factory, err := e.open()
	if err != nil {
		if errors.Is(err, ErrEnumerationUnavailable) {
			return Scan{}, err
		}
		return Scan{}, fmt.Errorf("%w: %w", ErrEnumerationUnavailable, err)
	}
	defer factory.Release()

	log := e.log()
	scan := Scan{Outputs: []Output{}}
	failures := 0
	for ai := 0; ; ai++ {
		err := scanAdapter(log, factory, ai, &scan)
		if errors.Is(err, ErrNoMoreItems) {
			break
		}
		if err != nil {
			log.Warn("adapter enumeration failed", logging.KeyAdapter, ai, logging.KeyError, err)
			failures++
			if failures >= maxConsecutiveEnumFailures {
				log.Warn("giving up on remaining adapters", logging.KeyAdapter, ai, "failures", failures)
				break
			}
			continue
		}
		failures = 0
	}
	return scan, nil
}

// scanAdapter appends the outputs of adapter ai. The adapter handle is
// released before it returns.
func scanAdapter(log *slog.Logger, factory Factory, ai int, scan *Scan) error {
	adapter, err := factory.EnumAdapter(ai)
	if err != nil {
		return err
	}
	defer adapter.Release()

	failures := 0
	for oi := 0; ; oi++ {
		out, err := readOutput(adapter, ai, oi)
		switch {
		case errors.Is(err, ErrNoMoreItems):
			return nil
		case errors.Is(err, errSkipOutput), errors.Is(err, ErrDescriptorUnavailable):
			failures = 0
			scan.skip(ai, oi, err)
			if errors.Is(err, ErrDescriptorUnavailable) {
				log.Warn("output descriptor unavailable", logging.KeyAdapter, ai, logging.KeyOutput, oi, logging.KeyError, err)
			} else {
				log.Debug("output skipped", logging.KeyAdapter, ai, logging.KeyOutput, oi, "reason", err)
			}
		case err != nil:
			scan.skip(ai, oi, err)
			log.Warn("output enumeration failed", logging.KeyAdapter, ai, logging.KeyOutput, oi, logging.KeyError, err)
			failures++
			if failures >= maxConsecutiveEnumFailures {
				log.Warn("giving up on remaining outputs", logging.KeyAdapter, ai, "failures", failures)
				return nil
			}
		default:
			failures = 0
			scan.Outputs = append(scan.Outputs, out)
		}
	}
}

var errSkipOutput = errors.New("output not on desktop")

func (s *Scan) skip(ai, oi int, err error) {
	s.Skipped = append(s.Skipped, SkippedOutput{
		AdapterIndex: ai,
		OutputIndex:  oi,
		Reason:       err.Error(),
	})
}

// readOutput reads output oi of adapter ai into an Output. The output handle
// is released before it returns.
func readOutput(adapter Adapter, ai, oi int) (Output, error) {
	handle, err := adapter.EnumOutput(oi)
	if err != nil {
		return Output{}, err
	}
	defer handle.Release()

	desc, err := handle.Desc()
	if err != nil {
		return Output{}, fmt.Errorf("%w: %w", ErrDescriptorUnavailable, err)
	}
	return outputFromDesc(ai, oi, desc)
}

func outputFromDesc(ai, oi int, desc OutputDesc) (Output, error) {
	if !desc.AttachedToDesktop {
		return Output{}, fmt.Errorf("%w: %s detached", errSkipOutput, desc.DeviceName)
	}
	w := int(desc.Right) - int(desc.Left)
	h := int(desc.Bottom) - int(desc.Top)
	if w <= 0 || h <= 0 {
		return Output{}, fmt.Errorf("%w: %s has empty bounds %dx%d", errSkipOutput, desc.DeviceName, w, h)
	}
	return Output{
		AdapterIndex: ai,
		OutputIndex:  oi,
		DeviceName:   desc.DeviceName,
		Width:        w,
		Height:       h,
		X:            int(desc.Left),
		Y:            int(desc.Top),
		Primary:      isPrimary(desc.Left, desc.Top),
	}, nil
}

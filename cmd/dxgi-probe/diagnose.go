package main

import (
	"fmt"
	"io"
	"runtime"
	"text/tabwriter"

	"github.com/breeze-rmm/dxgi-probe/internal/logging"
	"github.com/breeze-rmm/dxgi-probe/pkg/dxgi"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/spf13/cobra"
)

// hostInfo is swapped in tests.
var hostInfo = host.Info

type hostFacts struct {
	Hostname           string `json:"hostname" yaml:"hostname"`
	OS                 string `json:"os" yaml:"os"`
	Platform           string `json:"platform" yaml:"platform"`
	PlatformVersion    string `json:"platformVersion" yaml:"platformVersion"`
	Architecture       string `json:"architecture" yaml:"architecture"`
	VirtualizationRole string `json:"virtualizationRole,omitempty" yaml:"virtualizationRole,omitempty"`
	VirtualizationSys  string `json:"virtualizationSystem,omitempty" yaml:"virtualizationSystem,omitempty"`
}

// diagnosis explains an enumeration result: which source was read, what
// kind of host it ran on and which outputs were dropped.
type diagnosis struct {
	Source           string               `json:"source" yaml:"source"`
	Host             *hostFacts           `json:"host,omitempty" yaml:"host,omitempty"`
	HostError        string               `json:"hostError,omitempty" yaml:"hostError,omitempty"`
	Primary          string               `json:"primary,omitempty" yaml:"primary,omitempty"`
	Outputs          []dxgi.Output        `json:"outputs" yaml:"outputs"`
	Skipped          []dxgi.SkippedOutput `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	EnumerationError string               `json:"enumerationError,omitempty" yaml:"enumerationError,omitempty"`
}

func newDiagnoseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diagnose",
		Short: "Report host facts and skipped outputs alongside the enumeration",
		Long: `Diagnose runs one enumeration and reports it together with the host's OS
and virtualization facts and every output that was listed by the OS but
skipped (unreadable descriptor, detached from the desktop). Use it to tell
"no displays" apart from "displays that could not be read".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := a.diagnose()
			logging.FromContext(cmd.Context()).Debug("diagnosis complete",
				"outputs", len(d.Outputs), "skipped", len(d.Skipped))
			return renderDiagnosis(cmd.OutOrStdout(), a.cfg.OutputFormat, d)
		},
	}
}

func (a *app) diagnose() diagnosis {
	d := diagnosis{Source: "dxgi"}
	if a.cfg.SimulateFile != "" {
		d.Source = "simulated:" + a.cfg.SimulateFile
	}

	if info, err := hostInfo(); err != nil {
		d.HostError = err.Error()
	} else {
		d.Host = &hostFacts{
			Hostname:           info.Hostname,
			OS:                 info.OS,
			Platform:           info.Platform,
			PlatformVersion:    info.PlatformVersion,
			Architecture:       runtime.GOARCH,
			VirtualizationRole: info.VirtualizationRole,
			VirtualizationSys:  info.VirtualizationSystem,
		}
	}

	scan, err := a.enum.Scan()
	if err != nil {
		d.EnumerationError = err.Error()
	}
	if primary, ok := scan.Primary(); ok {
		d.Primary = primary.DeviceName
	}
	d.Outputs = scan.Outputs
	d.Skipped = scan.Skipped
	if d.Outputs == nil {
		d.Outputs = []dxgi.Output{}
	}
	return d
}

func renderDiagnosis(w io.Writer, format string, d diagnosis) error {
	if ok, err := writeStructured(w, format, d); ok {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Source:\t%s\n", d.Source)
	if d.Host != nil {
		fmt.Fprintf(tw, "Host:\t%s (%s %s %s, %s)\n", d.Host.Hostname, d.Host.OS, d.Host.Platform, d.Host.PlatformVersion, d.Host.Architecture)
		if d.Host.VirtualizationRole == "guest" {
			fmt.Fprintf(tw, "Virtualization:\tguest of %s\n", d.Host.VirtualizationSys)
		}
	} else {
		fmt.Fprintf(tw, "Host:\tunknown (%s)\n", d.HostError)
	}
	if d.EnumerationError != "" {
		fmt.Fprintf(tw, "Enumeration:\tfailed: %s\n", d.EnumerationError)
	} else {
		fmt.Fprintf(tw, "Enumeration:\t%d output(s), %d skipped\n", len(d.Outputs), len(d.Skipped))
	}
	if d.Primary != "" {
		fmt.Fprintf(tw, "Primary:\t%s\n", d.Primary)
	}
	for _, o := range d.Outputs {
		fmt.Fprintf(tw, "  output\t%s\n", o)
	}
	for _, s := range d.Skipped {
		fmt.Fprintf(tw, "  skipped\t[%d:%d] %s\n", s.AdapterIndex, s.OutputIndex, s.Reason)
	}
	return tw.Flush()
}

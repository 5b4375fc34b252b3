package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/breeze-rmm/dxgi-probe/pkg/dxgi"
	"gopkg.in/yaml.v3"
)

type resolved struct {
	DeviceName   string `json:"deviceName" yaml:"deviceName"`
	AdapterIndex int    `json:"adapterIndex" yaml:"adapterIndex"`
	OutputIndex  int    `json:"outputIndex" yaml:"outputIndex"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// writeStructured handles the json and yaml formats. It reports false for
// anything else so the caller can fall back to its table layout.
func writeStructured(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case "json":
		return true, writeJSON(w, v)
	case "yaml":
		return true, writeYAML(w, v)
	default:
		return false, nil
	}
}

func renderOutputs(w io.Writer, format string, outputs []dxgi.Output) error {
	if ok, err := writeStructured(w, format, outputs); ok {
		return err
	}
	if len(outputs) == 0 {
		_, err := fmt.Fprintln(w, "No display outputs found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ADAPTER\tOUTPUT\tDEVICE\tRESOLUTION\tPOSITION\tPRIMARY")
	for _, o := range outputs {
		primary := ""
		if o.Primary {
			primary = "yes"
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%dx%d\t%d,%d\t%s\n",
			o.AdapterIndex, o.OutputIndex, o.DeviceName, o.Width, o.Height, o.X, o.Y, primary)
	}
	return tw.Flush()
}

func renderResolved(w io.Writer, format string, r resolved) error {
	if ok, err := writeStructured(w, format, r); ok {
		return err
	}
	_, err := fmt.Fprintf(w, "%d %d\n", r.AdapterIndex, r.OutputIndex)
	return err
}

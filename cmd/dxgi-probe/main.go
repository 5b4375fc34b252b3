package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/breeze-rmm/dxgi-probe/internal/config"
	"github.com/breeze-rmm/dxgi-probe/internal/logging"
	"github.com/breeze-rmm/dxgi-probe/pkg/dxgi"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// app is the state shared by the sub commands of one invocation.
type app struct {
	cfgFile      string
	logLevel     string
	simulateFile string
	format       string

	cfg     *config.Config
	enum    *dxgi.Enumerator
	logFile io.Closer
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dxgi-probe",
		Short: "List DXGI display outputs",
		Long: `dxgi-probe enumerates the display outputs of every graphics adapter and
reports each output's adapter/output index pair, device name, resolution and
primary flag. The resolve command maps a device name such as \\.\DISPLAY2 to
the index pair DXGI capture APIs expect.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is <user config dir>/dxgi-probe/dxgi-probe.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&a.simulateFile, "simulate", "", "read the adapter/output topology from this YAML file instead of DXGI")
	rootCmd.PersistentFlags().StringVarP(&a.format, "format", "o", "", "output format: table, json, yaml")

	rootCmd.AddCommand(
		newListCmd(a),
		newResolveCmd(a),
		newDiagnoseCmd(a),
		&cobra.Command{
			Use:              "version",
			Short:            "Print the version number",
			PersistentPreRun: func(cmd *cobra.Command, args []string) {},
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "dxgi-probe v%s\n", version)
			},
		},
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.simulateFile != "" {
		cfg.SimulateFile = a.simulateFile
	}
	if a.format != "" {
		cfg.OutputFormat = a.format
	}

	var logOut io.Writer = cmd.ErrOrStderr()
	if cfg.LogFile != "" {
		rw, err := logging.NewRotatingWriter(cfg.LogFile, cfg.LogMaxSizeMB, cfg.LogMaxBackups)
		if err != nil {
			return err
		}
		a.logFile = rw
		logOut = rw
	}
	logging.Init(cfg.LogFormat, cfg.LogLevel, logOut)
	log := logging.L("cli")

	if errs := cfg.Validate(); len(errs) > 0 {
		// Validate resets bad values; re-apply the level in case it changed.
		logging.Init(cfg.LogFormat, cfg.LogLevel, logOut)
	}
	a.cfg = cfg

	opts := []dxgi.Option{dxgi.WithLogger(logging.L("dxgi"))}
	if cfg.SimulateFile != "" {
		topo, err := dxgi.LoadTopology(cfg.SimulateFile)
		if err != nil {
			return err
		}
		sim := dxgi.NewSimulator(topo)
		opts = append(opts, dxgi.WithFactory(sim.Open))
		log.Debug("using simulated topology", "file", cfg.SimulateFile, "adapters", len(topo.Adapters))
	}
	a.enum = dxgi.New(opts...)

	cmd.SetContext(logging.NewContext(cmd.Context(), log))
	return nil
}

func (a *app) teardown() {
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List display outputs in adapter/output order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputs, err := a.enum.Enumerate()
			if err != nil {
				return err
			}
			logging.FromContext(cmd.Context()).Debug("enumerated outputs", "count", len(outputs))
			return renderOutputs(cmd.OutOrStdout(), a.cfg.OutputFormat, outputs)
		},
	}
}

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <device-name>",
		Short: "Print the adapter and output index of a device name",
		Long: `Resolve matches the device name case-insensitively against a fresh
enumeration and prints "<adapter> <output>" for the first match.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ai, oi, err := a.enum.Resolve(args[0])
			if err != nil {
				return err
			}
			logging.FromContext(cmd.Context()).Debug("resolved output",
				logging.KeyDeviceName, args[0], logging.KeyAdapter, ai, logging.KeyOutput, oi)
			return renderResolved(cmd.OutOrStdout(), a.cfg.OutputFormat, resolved{
				DeviceName:   args[0],
				AdapterIndex: ai,
				OutputIndex:  oi,
			})
		},
	}
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, dxgi.ErrNotFound):
		return 2
	case errors.Is(err, dxgi.ErrEnumerationUnavailable):
		return 3
	default:
		return 1
	}
}

func execute(args []string, stdout, stderr io.Writer) int {
	a := &app{}
	defer a.teardown()

	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return exitCode(err)
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

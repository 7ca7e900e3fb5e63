package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"qsimcirq/statevec"
)

// cli carries the flags and settings shared by every subcommand.
type cli struct {
	configPath string
	logLevel   string

	cfg    Config
	logger *log.Logger
}

// newLogger builds the process logger at the named level.
func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "qsimcirq",
		ReportTimestamp: true,
	}), nil
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "qsimcirq",
		Short: "Simulate quantum circuits on a dense state vector",
		Long: `qsimcirq evolves a register of qubits through a sequence of unitary gates
and prints the amplitude of every basis state. Circuits come from OpenQASM 2.0
files or the built-in examples.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.configPath)
			if err != nil {
				return err
			}
			if c.logLevel != "" {
				cfg.LogLevel = c.logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			c.cfg = cfg
			c.logger, err = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			return err
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./"+defaultConfigName+" if present)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(c.newRunCmd(), c.newViewCmd(), c.newExamplesCmd(), c.newConfigCmd())
	return root
}

// loadCircuit reads path when given, otherwise the named example.
func (c *cli) loadCircuit(path, exampleName string) (*Circuit, string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		circ := &Circuit{}
		if err := circ.ParseQASM(string(data)); err != nil {
			return nil, "", fmt.Errorf("%s: %w", path, err)
		}
		return circ, path, nil
	}
	if exampleName == "" {
		exampleName = c.cfg.Example
	}
	if exampleName == "" {
		return nil, "", errors.New("no circuit: pass a QASM file or --example")
	}
	circ, err := loadExample(exampleName)
	if err != nil {
		return nil, "", err
	}
	return circ, "example " + exampleName, nil
}

func (c *cli) simOptions() []statevec.Option {
	return []statevec.Option{
		statevec.WithTolerances(c.cfg.StatevecTolerances()),
		statevec.WithLogger(c.logger),
	}
}

func (c *cli) newRunCmd() *cobra.Command {
	var (
		exampleName string
		initial     int
		precision   int
		steps       int
		table       bool
		qubits      bool
	)

	cmd := &cobra.Command{
		Use:   "run [file.qasm]",
		Short: "Simulate a circuit and print the final amplitudes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			circ, source, err := c.loadCircuit(path, exampleName)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("initial") {
				initial = c.cfg.Initial
			}
			if !cmd.Flags().Changed("precision") {
				precision = c.cfg.Precision
			}

			c.logger.Info("simulating", "source", source, "qubits", circ.NumQubits, "gates", len(circ.Gates))
			res, err := Simulate(circ, steps, initial, c.simOptions()...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if table {
				fmt.Fprintln(out, renderResultTable(res, precision))
			} else {
				fmt.Fprint(out, FormatResult(res, precision))
			}
			if qubits {
				fmt.Fprintln(out, renderQubitTable(res, precision))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&exampleName, "example", "e", "", "built-in example to run when no file is given")
	cmd.Flags().IntVar(&initial, "initial", 0, "index of the initial basis state")
	cmd.Flags().IntVar(&precision, "precision", 5, "digits after the decimal point")
	cmd.Flags().IntVar(&steps, "steps", -1, "stop after this step (-1 runs every step)")
	cmd.Flags().BoolVar(&table, "table", false, "render amplitudes as a table with probabilities")
	cmd.Flags().BoolVar(&qubits, "qubits", false, "also print per-qubit probabilities")
	return cmd
}

func (c *cli) newViewCmd() *cobra.Command {
	var (
		exampleName string
		savePath    string
		logFile     string
	)

	cmd := &cobra.Command{
		Use:   "view [file.qasm]",
		Short: "Step through a circuit interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			circ, source, err := c.loadCircuit(path, exampleName)
			if err != nil {
				return err
			}
			if savePath == "" {
				savePath = "circuit.qasm"
				if path != "" {
					savePath = path
				}
			}

			// The terminal belongs to the viewer; logs go to a file or nowhere.
			logger := log.New(io.Discard)
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer f.Close()
				logger, err = newLogger(f, c.cfg.LogLevel)
				if err != nil {
					return err
				}
			}
			logger.Info("viewer started", "source", source)

			p := tea.NewProgram(newModel(circ, c.cfg, logger, savePath), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
	cmd.Flags().StringVarP(&exampleName, "example", "e", "", "built-in example to open when no file is given")
	cmd.Flags().StringVar(&savePath, "save", "", "where ctrl+s writes QASM (default: the input file or circuit.qasm)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file while the viewer runs")
	return cmd
}

func (c *cli) newExamplesCmd() *cobra.Command {
	var show string

	cmd := &cobra.Command{
		Use:   "examples",
		Short: "List the built-in example circuits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if show != "" {
				ex, ok := lookupExample(show)
				if !ok {
					return fmt.Errorf("no example named %q", show)
				}
				fmt.Fprint(out, ex.QASM)
				return nil
			}
			for _, cat := range exampleMenu {
				fmt.Fprintln(out, titleStyle.Render(cat.name))
				for _, item := range cat.items {
					fmt.Fprintf(out, "  %-14s %dq  %s\n", item.name, item.qubits, item.description)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&show, "show", "", "print the QASM of one example")
	return cmd
}

func (c *cli) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigName
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := writeDefaultConfig(path); err != nil {
				return err
			}
			c.logger.Info("config written", "path", path)
			return nil
		},
	})
	return cmd
}

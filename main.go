package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bob-anderson-ok/zoeppritz/internal/logging"
	"github.com/bob-anderson-ok/zoeppritz/zoeppritz"
)

const version = "1_0_0"

// Process exit codes.
const (
	exitUsage    = 1
	exitRead     = 2
	exitParse    = 3
	exitValidate = 4
	exitCompute  = 5
	exitOutput   = 6
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func fail(code int, err error) error {
	return &exitError{code: code, err: err}
}

// overrides are the command line flags that replace parameter file values.
type overrides struct {
	out        string
	plot       string
	iterations int
	method     string
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Println(fmt.Errorf("\n\tcould not read .env: %w", err))
	}
	log := logging.FromEnv()

	if err := newRootCmd(log).Execute(); err != nil {
		fmt.Println(fmt.Errorf("\n\t%w\n", err))
		code := exitUsage
		var ee *exitError
		if errors.As(err, &ee) {
			code = ee.code
		}
		os.Exit(code)
	}
}

func newRootCmd(log *logging.Logger) *cobra.Command {
	var flags overrides

	root := &cobra.Command{
		Use:   "zoeppritz",
		Short: "Model and invert P-wave and converted-wave reflection coefficients",
		Long: `Reflection coefficients for a plane wave striking the boundary between two
elastic half-spaces.

Every command reads a JSON5 parameter file describing the two half-spaces,
the incidence angles and the equation to use.

Example: zoeppritz model shale_sand.json5 --plot ava.png`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&flags.out, "out", "", "table output file (.csv or .xlsx)")
	root.PersistentFlags().StringVar(&flags.plot, "plot", "", "PNG plot output file")

	invert := newInvertCmd(log, &flags)
	invert.Flags().IntVar(&flags.iterations, "iterations", 0, "number of iterations")
	invert.Flags().StringVar(&flags.method, "method", "", "gradient method: analytic|numeric")

	root.AddCommand(newModelCmd(log, &flags), invert, newGradcheckCmd(log, &flags))
	return root
}

func newModelCmd(log *logging.Logger, flags *overrides) *cobra.Command {
	return &cobra.Command{
		Use:   "model <parameter-file>",
		Short: "Tabulate amplitude and phase against incidence angle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := loadJob(cmd, args[0], flags)
			if err != nil {
				return err
			}
			return runModel(job, log)
		},
	}
}

func newInvertCmd(log *logging.Logger, flags *overrides) *cobra.Command {
	return &cobra.Command{
		Use:   "invert <parameter-file>",
		Short: "Recover the model from amplitudes synthesized from the parameter file",
		Long: `Synthesize amplitudes from the half-spaces in the parameter file, optionally
add Gaussian noise, and invert them with the chosen equation:

  zoeppritz  Gauss-Newton on the exact coefficients, from initial_ratios
  quadratic  Gauss-Newton on Wang's quadratic approximation
  linear     one-shot L2 and L1 fits of the Aki-Richards approximation`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := loadJob(cmd, args[0], flags)
			if err != nil {
				return err
			}
			return runInvert(job, log)
		},
	}
}

func newGradcheckCmd(log *logging.Logger, flags *overrides) *cobra.Command {
	return &cobra.Command{
		Use:   "gradcheck <parameter-file>",
		Short: "Compare analytic and finite-difference gradients of the exact coefficients",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := loadJob(cmd, args[0], flags)
			if err != nil {
				return err
			}
			return runGradcheck(job, log)
		},
	}
}

// loadJob reads, parses and validates a parameter file, then applies any
// command line overrides.
func loadJob(cmd *cobra.Command, path string, flags *overrides) (Job, error) {
	var job Job

	// Read the Json5 (or Json) parameter file
	data, err := os.ReadFile(path)
	if err != nil {
		return job, fail(exitRead, fmt.Errorf("attempt to read input file %q failed: %w", path, err))
	}

	jsonTable, err := parseJob(data)
	if err != nil {
		return job, fail(exitParse, fmt.Errorf("format error in file %q: %w", path, err))
	}

	msg, ok := validateJsonFileAndFillJob(jsonTable, &job)
	if !ok {
		return job, fail(exitValidate, errors.New(msg))
	}

	if err := applyOverrides(cmd, flags, &job); err != nil {
		return job, fail(exitValidate, err)
	}

	// Check for user wanting printout of complete jsonTable
	if job.ShowInput {
		fmt.Printf("%s", "\nPrintout of complete jsonTable contents...\n")
		fmt.Println(string(data))
	}
	return job, nil
}

func applyOverrides(cmd *cobra.Command, flags *overrides, job *Job) error {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("out") {
		job.TableFile = flags.out
	}
	if changed("plot") {
		job.PlotFile = flags.plot
	}
	if changed("iterations") {
		if flags.iterations < 1 {
			return fmt.Errorf("--iterations: must be positive, got %d", flags.iterations)
		}
		job.Iterations = flags.iterations
	}
	if changed("method") {
		m, err := zoeppritz.ParseMethod(flags.method)
		if err != nil {
			return fmt.Errorf("--method: %w", err)
		}
		job.Method = m
	}
	return nil
}

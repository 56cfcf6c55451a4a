package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/atplang/atp/pkg/processor"
)

// RunOptions holds the run command's flags.
type RunOptions struct {
	*RootOptions
	Lines    bool
	Chunk    uint
	Trace    bool
	TraceOut string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <pipeline-file> [input-file]",
		Short: "Run a pipeline over input",
		Long: `Run a pipeline file (.atp text or .atpbc bytecode) over input read
from a file or stdin. By default the whole input is one processing unit;
--lines and --chunk split it into independently executed units.

Example:
  atp run pipeline.atp input.txt
  echo "hello" | atp run pipeline.atpbc --lines`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(opts, cmd, args)
		},
	}

	cmd.Flags().BoolVar(&opts.Lines, "lines", false, "execute the pipeline once per input line")
	cmd.Flags().UintVar(&opts.Chunk, "chunk", 0, "execute the pipeline once per chunk of N runes")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "log every instruction step")
	cmd.Flags().StringVar(&opts.TraceOut, "trace-out", "", "write the trace of the last unit as CBOR")

	return cmd
}

func runPipeline(opts *RunOptions, cmd *cobra.Command, args []string) error {
	if opts.Lines && opts.Chunk > 0 {
		return fmt.Errorf("--lines and --chunk are mutually exclusive")
	}

	proc := processor.New()
	id, err := loadPipeline(proc, args[0])
	if err != nil {
		return err
	}

	input, err := readInput(args)
	if err != nil {
		return err
	}

	traced := opts.Trace || opts.TraceOut != ""
	for i, unit := range splitUnits(input, opts) {
		var out string
		if traced {
			out, err = proc.ExecuteTraced(id, unit)
		} else {
			out, err = proc.Execute(id, unit)
		}
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
	}
	fmt.Fprintln(cmd.OutOrStdout())

	if opts.TraceOut != "" {
		return proc.WriteLastTrace(opts.TraceOut)
	}
	return nil
}

func loadPipeline(proc *processor.Processor, path string) (string, error) {
	switch filepath.Ext(path) {
	case processor.BytecodeExtension:
		return proc.ReadBytecodeFile(path)
	default:
		return proc.ReadTextFile(path)
	}
}

func readInput(args []string) (string, error) {
	if len(args) == 2 {
		data, err := os.ReadFile(args[1])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitUnits(input string, opts *RunOptions) []string {
	switch {
	case opts.Lines:
		return splitLines(input)
	case opts.Chunk > 0:
		return splitChunks(input, opts.Chunk)
	default:
		return []string{input}
	}
}

func splitLines(input string) []string {
	var units []string
	start := 0
	for i := 0; i < len(input); i++ {
		if input[i] == '\n' {
			units = append(units, input[start:i])
			start = i + 1
		}
	}
	if start < len(input) {
		units = append(units, input[start:])
	}
	return units
}

func splitChunks(input string, n uint) []string {
	runes := []rune(input)
	var units []string
	for len(runes) > 0 {
		size := int(n)
		if size > len(runes) {
			size = len(runes)
		}
		units = append(units, string(runes[:size]))
		runes = runes[size:]
	}
	return units
}

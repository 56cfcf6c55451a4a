package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/atplang/atp/pkg/bytecode"
	"github.com/atplang/atp/pkg/processor"
	"github.com/atplang/atp/pkg/text"
	"github.com/atplang/atp/pkg/token"
)

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in-file> <out-file>",
		Short: "Convert a pipeline between text and bytecode",
		Long: `Convert a pipeline between the .atp text form and the .atpbc
bytecode form. The direction follows the file extensions.

Example:
  atp convert pipeline.atp pipeline.atpbc`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := readPipelineFile(args[0])
			if err != nil {
				return err
			}
			return writePipelineFile(args[1], tokens)
		},
	}
}

func readPipelineFile(path string) ([]token.Instruction, error) {
	switch filepath.Ext(path) {
	case processor.TextExtension:
		return text.ReadFile(path)
	case processor.BytecodeExtension:
		return bytecode.ReadFile(path)
	default:
		return nil, fmt.Errorf("%s: expected a %s or %s file",
			path, processor.TextExtension, processor.BytecodeExtension)
	}
}

func writePipelineFile(path string, tokens []token.Instruction) error {
	switch filepath.Ext(path) {
	case processor.TextExtension:
		return text.WriteFile(path, tokens)
	case processor.BytecodeExtension:
		return bytecode.WriteFile(path, tokens)
	default:
		return fmt.Errorf("%s: expected a %s or %s file",
			path, processor.TextExtension, processor.BytecodeExtension)
	}
}

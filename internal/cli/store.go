package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/atplang/atp/pkg/processor"
	"github.com/atplang/atp/pkg/store"
)

func openStore(opts *RootOptions) (*store.Store, error) {
	if opts.cfg.Store.Path != "" {
		return store.Open(opts.cfg.Store.Path)
	}
	return store.OpenDefault()
}

// NewSaveCommand creates the save command.
func NewSaveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> <pipeline-file>",
		Short: "Store a pipeline file under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, path := args[0], args[1]
			var format store.Format
			switch filepath.Ext(path) {
			case processor.TextExtension:
				format = store.FormatText
			case processor.BytecodeExtension:
				format = store.FormatBytecode
			default:
				return fmt.Errorf("%s: expected a %s or %s file",
					path, processor.TextExtension, processor.BytecodeExtension)
			}

			// Parse before storing so the store never holds a pipeline
			// this build cannot read back.
			if _, err := readPipelineFile(path); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			s, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()
			return s.Save(name, format, data)
		},
	}
}

// NewLoadCommand creates the load command.
func NewLoadCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "load <name> <out-file>",
		Short: "Write a stored pipeline to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			_, data, err := s.Load(args[0])
			if err != nil {
				return err
			}
			return os.WriteFile(args[1], data, 0o644)
		},
	}
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored pipelines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			names, err := s.List()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a stored pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()
			return s.Delete(args[0])
		},
	}
}

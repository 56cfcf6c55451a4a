package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/atplang/atp/pkg/registry"
)

// NewTokensCommand creates the tokens command.
func NewTokensCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens",
		Short: "List every instruction kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MNEMONIC\tOPCODE\tPARAMS")
			for _, e := range registry.All() {
				var slots []string
				for _, slot := range e.Sig {
					if slot.Literal != "" {
						slots = append(slots, slot.Literal)
					} else {
						slots = append(slots, slot.Kind.String())
					}
				}
				params := strings.Join(slots, " ")
				if params == "" {
					params = "-"
				}
				fmt.Fprintf(w, "%s\t0x%02x\t%s\n", e.Mnemonic, e.Opcode, params)
			}
			return w.Flush()
		},
	}
}

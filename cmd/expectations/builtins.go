package main

import (
	"github.com/NethermindEth/expectations/builtin"
	"github.com/NethermindEth/expectations/calldata"
	"github.com/NethermindEth/expectations/core"
	"github.com/NethermindEth/expectations/hex"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// BuiltinsCmd lists the registered builtins together with the result each
// one yields for a call without arguments.
func BuiltinsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "builtins",
		Short: "Lists the builtin functions known to the encoder.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := builtin.Default()
			encoder := calldata.New(registry)

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Name", "Result"})
			table.SetAutoWrapText(false)
			for _, name := range registry.Names() {
				result, err := encoder.Evaluate(&core.Call{Kind: core.Builtin, Signature: name + "()"})
				if err != nil {
					return err
				}
				table.Append([]string{name, hex.Encode(result, hex.WithPrefix, hex.Lower)})
			}
			table.Render()
			return nil
		},
	}
}

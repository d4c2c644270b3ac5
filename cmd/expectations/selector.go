package main

import (
	"fmt"

	"github.com/NethermindEth/expectations/core/crypto"
	"github.com/NethermindEth/expectations/hex"
	"github.com/spf13/cobra"
)

func SelectorCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "selector SIGNATURE...",
		Short:   "Prints the 4-byte selector of each function signature.",
		Example: "expectations selector 'transfer(address,uint256)'",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, sig := range args {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
					hex.Encode(crypto.SelectorBytes(sig), hex.WithPrefix, hex.Lower), sig); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/NethermindEth/expectations/hex"
	"github.com/spf13/cobra"
)

const (
	caseF   = "case"
	prefixF = "prefix"
	strictF = "strict"

	defaultStrict = true

	caseUsage   = "Options: lower, upper, mixed."
	prefixUsage = "Options: add, none."
	strictUsage = "Fail on invalid characters. With --strict=false invalid input decodes to nothing."
)

func HexCmd() *cobra.Command {
	hexCmd := &cobra.Command{
		Use:   "hex",
		Short: "Encodes and decodes hexadecimal literals.",
	}
	hexCmd.AddCommand(hexEncodeCmd(), hexDecodeCmd())
	return hexCmd
}

func hexEncodeCmd() *cobra.Command {
	c, p := hex.Lower, hex.WithPrefix

	cmd := &cobra.Command{
		Use:   "encode LITERAL...",
		Short: "Re-encodes hex literals in the requested case and prefix style.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				data, err := hex.Decode(arg, hex.Throw)
				if err != nil {
					return fmt.Errorf("%q: %w", arg, err)
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), hex.Encode(data, p, c)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().Var(&c, caseF, caseUsage)
	cmd.Flags().Var(&p, prefixF, prefixUsage)
	return cmd
}

func hexDecodeCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "decode LITERAL...",
		Short: "Prints the bytes of hex literals as a Go byte slice.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			on := hex.Throw
			if !strict {
				on = hex.ReturnSentinel
			}
			for _, arg := range args {
				data, err := hex.Decode(arg, on)
				if err != nil {
					return fmt.Errorf("%q: %w", arg, err)
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d %v\n", len(data), data); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, strictF, defaultStrict, strictUsage)
	return cmd
}

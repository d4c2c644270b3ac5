package main

import (
	"os"

	"github.com/NethermindEth/expectations/manifest"
	"github.com/spf13/cobra"
)

// ConvertCmd rewrites a manifest in the format named by the extension of the
// destination, e.g. YAML to CBOR.
func ConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "convert SRC DST",
		Short:   "Converts a manifest between the YAML, JSON and CBOR formats.",
		Example: "expectations convert calls.yaml calls.cbor",
		Args:    cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return convert(args[0], args[1])
		},
	}
}

func convert(src, dst string) error {
	format, err := manifest.FormatOf(dst)
	if err != nil {
		return err
	}
	calls, err := manifest.Load(src)
	if err != nil {
		return err
	}

	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err = manifest.Encode(f, format, calls); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Package report renders encoded calls keyed by the manifest they came from.
package report

import (
	"encoding"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/NethermindEth/expectations/calldata"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown report format (known: json, yaml, table)")

type Format int

var (
	_ pflag.Value              = (*Format)(nil)
	_ encoding.TextUnmarshaler = (*Format)(nil)
)

const (
	JSON Format = iota
	YAML
	Table
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	case Table:
		return "table"
	default:
		// Should not happen.
		panic(ErrUnknownFormat)
	}
}

func (f *Format) Set(s string) error {
	switch strings.ToLower(s) {
	case "json":
		*f = JSON
	case "yaml", "yml":
		*f = YAML
	case "table":
		*f = Table
	default:
		return ErrUnknownFormat
	}
	return nil
}

func (f *Format) Type() string {
	return "Format"
}

func (f *Format) UnmarshalText(text []byte) error {
	return f.Set(string(text))
}

func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// File holds the records of a single manifest.
type File struct {
	Path    string
	Records []calldata.Record
}

// Write renders files to w. JSON and YAML output is a single object keyed by
// path; the table lists one row per record in the order of files.
func Write(w io.Writer, format Format, files []File) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(byPath(files))
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(byPath(files)); err != nil {
			return err
		}
		return enc.Close()
	case Table:
		writeTable(w, files)
		return nil
	default:
		return ErrUnknownFormat
	}
}

func byPath(files []File) map[string][]calldata.Record {
	out := make(map[string][]calldata.Record, len(files))
	for _, f := range files {
		if _, ok := out[f.Path]; !ok {
			out[f.Path] = []calldata.Record{}
		}
		out[f.Path] = append(out[f.Path], f.Records...)
	}
	return out
}

func writeTable(w io.Writer, files []File) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Signature", "Call data", "Expectations", "Failure"})
	table.SetAutoWrapText(false)

	total := 0
	for _, f := range files {
		for _, r := range f.Records {
			table.Append([]string{f.Path, r.Signature, r.CallData, r.Expectations, strconv.FormatBool(r.Failure)})
			total++
		}
	}
	table.SetFooter([]string{"Total", strconv.Itoa(total), "", "", ""})
	table.Render()
}

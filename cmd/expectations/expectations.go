package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/NethermindEth/expectations/builtin"
	"github.com/NethermindEth/expectations/calldata"
	"github.com/NethermindEth/expectations/hex"
	"github.com/NethermindEth/expectations/manifest"
	"github.com/NethermindEth/expectations/report"
	"github.com/NethermindEth/expectations/utils"
	"github.com/NethermindEth/expectations/validator"
	"github.com/mitchellh/mapstructure"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Version string

const (
	configF      = "config"
	logLevelF    = "log-level"
	colourF      = "colour"
	hexCaseF     = "hex-case"
	hexPrefixF   = "hex-prefix"
	formatF      = "format"
	outputF      = "output"
	workersF     = "workers"
	metricsFileF = "metrics-file"

	defaultConfig      = ""
	defaultColour      = true
	defaultOutput      = ""
	defaultMetricsFile = ""

	configFlagUsage   = "The yaml configuration file."
	logLevelFlagUsage = "Options: debug, info, warn, error."
	colourUsage       = "Uses --colour=false command to disable colourized outputs (ANSI Escape Codes)."
	hexCaseUsage      = "Letter case of the call data. Options: lower, upper, mixed."
	hexPrefixUsage    = "Prefix call data with 0x. Options: add, none. Expectations are always prefixed."
	formatUsage       = "Report format. Options: json, yaml, table."
	outputUsage       = "File the report is written to. Defaults to standard output."
	workersUsage      = "Number of manifests and calls processed concurrently."
	metricsFileUsage  = "Write encoding counters in the Prometheus text format to this file."
)

var (
	defaultLogLevel  = utils.INFO
	defaultHexCase   = hex.Lower
	defaultHexPrefix = hex.WithPrefix
	defaultFormat    = report.JSON
	defaultWorkers   = runtime.GOMAXPROCS(0)
)

type Config struct {
	LogLevel    utils.LogLevel `mapstructure:"log-level" validate:"oneof=debug info warn error"`
	Colour      bool           `mapstructure:"colour"`
	HexCase     hex.Case       `mapstructure:"hex-case" validate:"oneof=lower upper mixed"`
	HexPrefix   hex.Prefix     `mapstructure:"hex-prefix" validate:"oneof=add none"`
	Format      report.Format  `mapstructure:"format" validate:"oneof=json yaml table"`
	Output      string         `mapstructure:"output"`
	Workers     int            `mapstructure:"workers" validate:"min=1"`
	MetricsFile string         `mapstructure:"metrics-file"`
}

// RunFn encodes the manifests at paths and writes the report to out.
type RunFn func(ctx context.Context, cfg *Config, paths []string, out io.Writer) error

func NewCmd(run RunFn) *cobra.Command {
	var cfgFile string

	expectationsCmd := &cobra.Command{
		Use:     "expectations [flags] MANIFEST...",
		Short:   "Encodes isoltest function calls into call data and expectations.",
		Version: Version,
		Args:    cobra.MinimumNArgs(1),
	}

	// Copy the defaults so that flag parsing never writes to them.
	logLevel, hexCase, hexPrefix, format := defaultLogLevel, defaultHexCase, defaultHexPrefix, defaultFormat

	flags := expectationsCmd.Flags()
	flags.StringVar(&cfgFile, configF, defaultConfig, configFlagUsage)
	flags.Var(&logLevel, logLevelF, logLevelFlagUsage)
	flags.Bool(colourF, defaultColour, colourUsage)
	flags.Var(&hexCase, hexCaseF, hexCaseUsage)
	flags.Var(&hexPrefix, hexPrefixF, hexPrefixUsage)
	flags.Var(&format, formatF, formatUsage)
	flags.StringP(outputF, "o", defaultOutput, outputUsage)
	flags.Int(workersF, defaultWorkers, workersUsage)
	flags.String(metricsFileF, defaultMetricsFile, metricsFileUsage)

	expectationsCmd.RunE = func(cmd *cobra.Command, args []string) error {
		v := viper.New()
		if cfgFile != "" {
			v.SetConfigType("yaml")
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return err
			}
		}

		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		cfg := new(Config)
		if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		))); err != nil {
			return err
		}
		if err := validator.Validator().Struct(cfg); err != nil {
			return err
		}

		return run(cmd.Context(), cfg, args, cmd.OutOrStdout())
	}

	expectationsCmd.AddCommand(BuiltinsCmd(), SelectorCmd(), HexCmd(), ConvertCmd())
	return expectationsCmd
}

// Run is the default RunFn.
func Run(ctx context.Context, cfg *Config, paths []string, out io.Writer) error {
	log, err := utils.NewZapLogger(cfg.LogLevel, cfg.Colour)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	var metrics *calldata.Metrics
	registry := prometheus.NewRegistry()
	if cfg.MetricsFile != "" {
		if metrics, err = calldata.NewMetrics(registry); err != nil {
			return err
		}
	}

	encoder := calldata.New(builtin.Default(),
		calldata.WithCase(cfg.HexCase),
		calldata.WithPrefix(cfg.HexPrefix),
		calldata.WithLogger(log),
		calldata.WithMetrics(metrics),
	)

	manifests, err := manifest.LoadAll(paths, cfg.Workers)
	if err != nil {
		return err
	}

	files := make([]report.File, 0, len(paths))
	for i, calls := range manifests {
		records, err := encoder.EncodeAll(ctx, calls, cfg.Workers)
		if err != nil {
			return err
		}
		log.Debugw("Encoded manifest", "path", paths[i], "calls", len(calls), "records", len(records))
		files = append(files, report.File{Path: paths[i], Records: records})
	}

	if err := writeReport(out, cfg.Output, cfg.Format, files); err != nil {
		return err
	}

	if cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, registry); err != nil {
			return err
		}
	}
	log.Infow("Finished", "manifests", len(paths))
	return nil
}

// writeReport writes files to path, or to out when path is empty.
func writeReport(out io.Writer, path string, format report.Format, files []report.File) error {
	if path == "" {
		if err := report.Write(out, format, files); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.Write(f, format, files); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report %s: %w", path, err)
	}
	return nil
}

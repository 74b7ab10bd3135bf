package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/danmuck/midcrack/internal/logging"
	"github.com/danmuck/midcrack/internal/pipeline"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type options struct {
	configPath  string
	metricsPath string
	modes       map[pipeline.Mode]*bool
}

func main() {
	logging.ConfigureRuntime()
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "midcrack: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	registry := pipeline.NewDefaultRegistry()
	specs := registry.ListSpecs()
	opts := options{modes: make(map[pipeline.Mode]*bool, len(specs))}

	cmd := &cobra.Command{
		Use:           "midcrack (-m | -i | -c | -d) <input> <output>",
		Short:         "Convert binary rasters to mid-crack codes and compress them",
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// arguments are valid past this point; failures are not usage errors
			cmd.SilenceUsage = true
			return run(registry, opts, args[0], args[1])
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetUsageTemplate(usageTemplate(specs))

	flags := cmd.Flags()
	names := make([]string, 0, len(specs))
	for _, spec := range specs {
		opts.modes[spec.Mode] = flags.BoolP(spec.Name, string(spec.Mode), false, spec.Description)
		names = append(names, spec.Name)
	}
	flags.StringVar(&opts.configPath, "config", "", "TOML config file")
	flags.StringVar(&opts.metricsPath, "metrics", "", "write Prometheus metrics to this textfile")
	cmd.MarkFlagsMutuallyExclusive(names...)
	cmd.MarkFlagsOneRequired(names...)
	return cmd
}

func run(registry *pipeline.Registry, opts options, in, out string) error {
	cfg := defaultAppConfig()
	if opts.configPath != "" {
		loaded, err := loadConfig(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if cfg.LogLevel != "" {
		logging.SetLevel(cfg.LogLevel)
	}
	if opts.metricsPath != "" {
		cfg.Pipeline.MetricsTextfile = opts.metricsPath
	}

	mode, err := selectedMode(opts)
	if err != nil {
		return err
	}
	return pipeline.NewRunner(cfg.Pipeline, registry, nil, log.Logger).Run(mode, in, out)
}

func selectedMode(opts options) (pipeline.Mode, error) {
	for mode, set := range opts.modes {
		if *set {
			return mode, nil
		}
	}
	return "", pipeline.ErrUnknownMode
}

func usageTemplate(specs []pipeline.OperationSpec) string {
	var sb strings.Builder
	sb.WriteString("Usage:\n")
	for _, spec := range specs {
		fmt.Fprintf(&sb, "\t%s: -%s [%s] [%s]\n", spec.Description, spec.Mode, spec.Input, spec.Output)
	}
	sb.WriteString("\nFlags:\n{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}\n")
	return sb.String()
}

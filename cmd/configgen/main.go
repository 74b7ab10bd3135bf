package main

import (
	"fmt"
	"io"
	"os"

	"github.com/danmuck/midcrack/internal/config"
	"github.com/danmuck/midcrack/internal/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const defaultPath = "cmd/midcrack/config.toml"

func main() {
	logging.ConfigureRuntime()
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "configgen: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var (
		output   string
		input    string
		validate bool
		force    bool
		printTpl bool
	)
	cmd := &cobra.Command{
		Use:           "configgen",
		Short:         "Write or validate a midcrack config file",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if validate {
				path := input
				if path == "" {
					path = defaultPath
				}
				if _, err := config.Validate(path); err != nil {
					return err
				}
				log.Info().Str("path", path).Msg("validated midcrack config")
				return nil
			}
			if printTpl {
				template, err := config.Template()
				if err != nil {
					return err
				}
				_, err = stdout.Write(template)
				return err
			}

			target := output
			if target == "" {
				target = defaultPath
			}
			if err := config.WriteTemplate(target, force); err != nil {
				return err
			}
			log.Info().Str("path", target).Msg("wrote midcrack config template")
			return nil
		},
	}
	cmd.SetOut(stdout)

	flags := cmd.Flags()
	flags.StringVar(&output, "output", "", "output path for config template (default "+defaultPath+")")
	flags.StringVar(&input, "input", "", "config path for validation (default "+defaultPath+")")
	flags.BoolVar(&validate, "validate", false, "validate an existing config file")
	flags.BoolVar(&force, "force", false, "overwrite existing config file")
	flags.BoolVar(&printTpl, "print", false, "print the template to stdout")
	cmd.MarkFlagsMutuallyExclusive("validate", "print", "output")
	return cmd
}

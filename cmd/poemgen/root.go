package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/dgallion1/poemgen/internal/config"
	"github.com/dgallion1/poemgen/internal/site"
	"github.com/spf13/cobra"
)

type options struct {
	configPath   string
	outputDir    string
	buildVersion string
}

func newLogger() *slog.Logger {
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func (o *options) loadConfig() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, err
	}
	if o.outputDir != "" {
		cfg.OutputDir = o.outputDir
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (o *options) generator(cfg config.Config, log *slog.Logger) *site.Generator {
	return site.NewGenerator(cfg, log).WithVersion(o.buildVersion)
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "poemgen <poems.txt>",
		Short:         "Render a poem corpus into paginated HTML, a table of contents and an Atom feed",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			_, err = opts.generator(cfg, log).Build(cmd.Context(), args[0])
			return err
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file")
	rootCmd.PersistentFlags().StringVarP(&opts.outputDir, "out", "o", "", "Output directory (overrides OUTPUT_DIR)")
	rootCmd.PersistentFlags().StringVar(&opts.buildVersion, "build-version", "", "Fixed cache-busting token for reproducible output")

	rootCmd.AddCommand(newServeCommand(opts))

	return rootCmd
}

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/scbtools/tablepull/internal/config"
	"github.com/scbtools/tablepull/internal/dataset"
	"github.com/scbtools/tablepull/internal/fetch"
	"github.com/scbtools/tablepull/internal/logging"
	"github.com/scbtools/tablepull/internal/pipeline"
	"github.com/scbtools/tablepull/internal/query"
	"github.com/scbtools/tablepull/internal/sink"
)

// newPullCmd creates and configures the 'pull' subcommand.
// It resolves the named dataset, loads its query spec, and runs the pipeline
// once. Any config, transport, or schema failure aborts with a non-zero exit.
func newPullCmd() *cobra.Command {
	var (
		queryPath string
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "pull <dataset>",
		Short: "Fetch one table and write its output file",
		Long: fmt.Sprintf(`Fetches one of the built-in datasets (%v) and writes the result
into the output directory. The query spec file controls the POST body, the
table identifier, and the requested response format.`, dataset.Names()),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			logger, err := logging.New(cfg.Logging.Development)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck // best-effort flush

			ds, err := dataset.Lookup(args[0])
			if err != nil {
				return err
			}

			specPath := queryPath
			if specPath == "" {
				specPath = cfg.QueryPath(ds.Name)
			}
			if specPath == "" {
				specPath = ds.DefaultQueryPath
			}
			spec, err := query.Load(specPath)
			if err != nil {
				return err
			}

			dir := outputDir
			if dir == "" {
				dir = cfg.Output.Dir
			}
			writer, err := sink.New(dir)
			if err != nil {
				return err
			}

			client := fetch.New(fetch.Config{
				BaseURL:   cfg.API.BaseURL,
				Timeout:   time.Duration(cfg.API.TimeoutSeconds) * time.Second,
				UserAgent: cfg.API.UserAgent,
			}, logger)

			pipe := pipeline.Pipeline{
				Dataset: ds,
				Client:  client,
				Sink:    writer,
				Logger:  logger,
				Stdout:  cmd.OutOrStdout(),
			}

			res, err := pipe.Run(cmd.Context(), spec)
			if err != nil {
				return err
			}

			switch res.Format {
			case pipeline.FormatCSV:
				fmt.Fprintf(cmd.OutOrStdout(), "Data saved to %s\n", res.OutputPath)
			case pipeline.FormatPX:
				fmt.Fprintf(cmd.OutOrStdout(), "PC-Axis file saved to %s\n", res.OutputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&queryPath, "query", "", "query spec file (overrides config and the dataset default)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "output directory (overrides config)")

	return cmd
}

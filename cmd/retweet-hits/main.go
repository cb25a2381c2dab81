package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dd0wney/cluso-hits/pkg/config"
	"github.com/dd0wney/cluso-hits/pkg/logging"
	"github.com/dd0wney/cluso-hits/pkg/metrics"
	"github.com/dd0wney/cluso-hits/pkg/ranking"
	"github.com/dd0wney/cluso-hits/pkg/report"
	"github.com/dd0wney/cluso-hits/pkg/retweet"
	"github.com/spf13/cobra"
)

// options holds flag values; a flag only overrides the config file when set
type options struct {
	configPath  string
	iterations  int
	topK        int
	tolerance   float64
	engine      string
	format      string
	source      string
	s3Bucket    string
	s3Key       string
	pgDSN       string
	logLevel    string
	metricsAddr string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "retweet-hits [file]",
		Short: "Rank Twitter users as hubs and authorities of the retweet graph",
		Long: `retweet-hits reads line-delimited tweet JSON, builds the weighted graph of
who retweets whom, and ranks users with HITS: good hubs retweet good
authorities, good authorities are retweeted by good hubs.

Examples:
  retweet-hits tweets.jsonl
  retweet-hits --top 20 --format json tweets.jsonl.sz
  zcat tweets.jsonl.gz | retweet-hits -
  retweet-hits --source s3 --s3-bucket archive --s3-key 2024/05/01.jsonl.sz
  retweet-hits --source postgres --pg-dsn postgres://hits@localhost/tweets`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd, args)
			if err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	flags.IntVarP(&opts.iterations, "iterations", "n", config.Default().Iterations, "HITS iterations")
	flags.IntVarP(&opts.topK, "top", "k", config.Default().TopK, "Number of hubs and authorities to report")
	flags.Float64Var(&opts.tolerance, "tolerance", 0, "Stop early when no score moves more than this (0 runs every iteration)")
	flags.StringVar(&opts.engine, "engine", config.EngineSparse, "Scoring engine (sparse, dense)")
	flags.StringVarP(&opts.format, "format", "o", config.FormatTable, "Output format (table, json)")
	flags.StringVar(&opts.source, "source", config.SourceFile, "Record source (file, s3, postgres)")
	flags.StringVar(&opts.s3Bucket, "s3-bucket", "", "S3 bucket holding the input object")
	flags.StringVar(&opts.s3Key, "s3-key", "", "S3 key of the input object")
	flags.StringVar(&opts.pgDSN, "pg-dsn", "", "PostgreSQL connection string")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while running")

	cmd.AddCommand(newConfigCmd(opts))
	return cmd
}

func newConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config [file]",
		Short: "Print the effective configuration with credentials masked",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd, args)
			if err != nil {
				return err
			}
			out, err := cfg.Redacted().Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

// resolve loads the config file and applies the flags the user set
func (o *options) resolve(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("iterations") {
		cfg.Iterations = o.iterations
	}
	if flags.Changed("top") {
		cfg.TopK = o.topK
	}
	if flags.Changed("tolerance") {
		cfg.Tolerance = o.tolerance
	}
	if flags.Changed("engine") {
		cfg.Engine = o.engine
	}
	if flags.Changed("format") {
		cfg.Format = o.format
	}
	if flags.Changed("source") {
		cfg.Source.Type = o.source
	}
	if flags.Changed("s3-bucket") {
		cfg.Source.S3.Bucket = o.s3Bucket
	}
	if flags.Changed("s3-key") {
		cfg.Source.S3.Key = o.s3Key
	}
	if flags.Changed("pg-dsn") {
		cfg.Source.Postgres.DSN = o.pgDSN
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = o.metricsAddr
	}
	if len(args) == 1 {
		cfg.Source.Type = config.SourceFile
		cfg.Source.Path = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Logs go to stderr so stdout carries only the report
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}

	reg := metrics.DefaultRegistry()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := reg.Serve(ctx, cfg.MetricsAddr); err != nil {
				logger.Error("metrics server stopped", logging.Error(err), logging.String("addr", cfg.MetricsAddr))
			}
		}()
		logger.Info("serving metrics", logging.String("addr", cfg.MetricsAddr))
	}

	src, err := retweet.NewSource(ctx, cfg.Source)
	if err != nil {
		logger.Error("failed to open source", logging.Error(err), logging.Source(cfg.Source.Type))
		return err
	}
	defer src.Close()

	if fs, ok := src.(*retweet.FileSource); ok {
		fs.Stdin = cmd.InOrStdin()
	}

	rep, err := ranking.New(cfg, logger, reg).Rank(ctx, src)
	if err != nil {
		return err
	}

	if err := report.Render(cmd.OutOrStdout(), rep, cfg.Format); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

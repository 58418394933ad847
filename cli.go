package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/CrestNiraj12/curatetl/app/pipeline"
	"github.com/CrestNiraj12/curatetl/infra/config"
	"github.com/CrestNiraj12/curatetl/tui/confirm"
	"github.com/CrestNiraj12/curatetl/tui/progress"
)

// options are the per-run command line settings.
type options struct {
	resume       bool
	archive      string
	likesArchive string
	onlyRetweets bool
	onlyMentions bool
	olderThan    *int
	chunkSize    int
	configPath   string
	rate         float64
	skipLikes    bool
	dryRun       bool
	verbose      bool
}

func newRootCmd(stdin *os.File, stdout io.Writer) *cobra.Command {
	var (
		opts      options
		olderThan int
	)

	root := &cobra.Command{
		Use:   "curatetl",
		Short: "Prune your post history by a fixed set of retention rules",
		Long: `curatetl deletes old posts and likes from your account, keeping
anything protected by conf.yaml (safe hashtags, text, ids and prefixes),
replies to your own posts, and anything newer than --older-than days.

Every chunk of deletions is listed and confirmed first. Progress is saved
after each deletion, so an interrupted run continues with --resume.

Examples:
  # Delete everything older than 90 days except protected posts
  curatetl --older-than 90

  # Work from a downloaded archive instead of the API
  curatetl -a data/tweets.js --likes-archive data/like.js

  # Only remove retweets, and show what would go
  curatetl --only-retweets --dry-run`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("older-than") {
				opts.olderThan = &olderThan
			}
			if err := opts.validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return execute(ctx, opts, stdin, stdout)
		},
	}

	f := root.Flags()
	f.BoolVarP(&opts.resume, "resume", "r", false, "resume deletion using the local cache and ledgers")
	f.StringVarP(&opts.archive, "archive", "a", "", "read posts from an archive export (tweets.js)")
	f.StringVar(&opts.likesArchive, "likes-archive", "", "read likes from an archive export (like.js)")
	f.BoolVar(&opts.onlyRetweets, "only-retweets", false, "only delete retweets")
	f.BoolVarP(&opts.onlyMentions, "only-mentions", "m", false, "only delete posts starting with a mention")
	f.IntVar(&olderThan, "older-than", 0, "keep posts and likes this many days old or newer")
	f.IntVar(&opts.chunkSize, "chunk-size", pipeline.DefaultChunkSize, "items per confirmation")
	f.StringVarP(&opts.configPath, "config", "c", config.DefaultRetentionPath, "retention rules file (YAML; keys may also be written as :username:)")
	f.Float64Var(&opts.rate, "rate", 0, "maximum deletions per second (0 = unlimited)")
	f.BoolVar(&opts.skipLikes, "skip-likes", false, "do not offer to remove likes")
	f.BoolVar(&opts.dryRun, "dry-run", false, "list what would be deleted without deleting")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging on stderr")

	root.AddCommand(newVersionCmd(stdout))
	return root
}

func newVersionCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
			fmt.Fprintf(out, "curatetl %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		},
	}
}

func (o options) validate() error {
	if o.chunkSize <= 0 {
		return fmt.Errorf("--chunk-size must be positive, got %d", o.chunkSize)
	}
	if o.olderThan != nil && *o.olderThan < 0 {
		return fmt.Errorf("--older-than must not be negative, got %d", *o.olderThan)
	}
	if o.rate < 0 {
		return fmt.Errorf("--rate must not be negative, got %g", o.rate)
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).
		With("run", uuid.NewString())
}

// execute wires the terminal, configuration and backend into a runner.
func execute(ctx context.Context, opts options, stdin *os.File, stdout io.Writer) error {
	logger := newLogger(os.Stderr, opts.verbose)
	slog.SetDefault(logger)

	rules, err := config.LoadRetention(opts.configPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "user: %s\n", rules.Username)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	api, err := newBackend(ctx, cfg)
	if err != nil {
		return err
	}

	r := &runner{
		opts:      opts,
		cfg:       cfg,
		retention: rules.Retention(opts.olderThan, opts.onlyRetweets, opts.onlyMentions),
		api:       api,
		confirm:   confirm.New(stdin, stdout),
		reporter:  newReporter(stdout),
		out:       stdout,
		logger:    logger,
		now:       time.Now,
	}
	return r.run(ctx)
}

func newReporter(out io.Writer) *progress.Reporter {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return progress.New(out)
	}
	opts := []progress.Option{progress.Inline()}
	if w, _, err := term.GetSize(int(f.Fd())); err == nil {
		opts = append(opts, progress.WithWidth(w))
	}
	return progress.New(out, opts...)
}

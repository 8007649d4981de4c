package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/sharif-course-watch/internal/config"
	"github.com/pfrederiksen/sharif-course-watch/internal/course"
	"github.com/pfrederiksen/sharif-course-watch/internal/notifier"
	"github.com/pfrederiksen/sharif-course-watch/internal/scraper"
	"github.com/pfrederiksen/sharif-course-watch/internal/storage"
	"github.com/pfrederiksen/sharif-course-watch/internal/telegram"
	"github.com/pfrederiksen/sharif-course-watch/internal/watcher"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagDryRun  bool
	flagVerbose bool
	flagRestore string
	flagPeriod  time.Duration
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course-watch",
		Short: "Watch university course offerings for changes",
		Long: `Watches the course offering tables of every tracked department,
keeps snapshots across runs and reports added, removed and changed
courses to a Telegram channel.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "Print reports instead of sending them")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newDiffCmd())

	return cmd
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Perform a single extraction pass",
		RunE:  runOnce,
	}
	cmd.Flags().StringVar(&flagRestore, "restore", "", "Snapshot file to diff the pass against")
	return cmd
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run extraction passes periodically until interrupted",
		RunE:  runWatch,
	}
	cmd.Flags().DurationVar(&flagPeriod, "period", 0, "Pause between passes (default from WATCH_PERIOD)")
	return cmd
}

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <old-snapshot> <new-snapshot>",
		Short: "Compare two snapshot files and print the report",
		Args:  cobra.ExactArgs(2),
		RunE:  runDiff,
	}
}

// buildWatcher wires the scraper, storage and notifier from configuration.
func buildWatcher(cfg *config.Config) (*watcher.Watcher, *storage.Store, error) {
	if err := cfg.ValidateScrape(); err != nil {
		return nil, nil, err
	}

	store, err := storage.New(cfg.DataDir, cfg.ArchiveDir)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing storage: %w", err)
	}

	var n notifier.Notifier
	if flagDryRun {
		n = notifier.NewDryRun()
	} else {
		if err := cfg.ValidateTelegram(); err != nil {
			return nil, nil, err
		}
		client, err := telegram.NewClient(cfg.BotToken, cfg.ChatID)
		if err != nil {
			return nil, nil, fmt.Errorf("initializing Telegram client: %w", err)
		}
		n = notifier.NewTelegram(client)
	}

	sc := scraper.New(cfg.EduUsername, cfg.EduPassword)
	return watcher.New(sc, store, n), store, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func runOnce(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	w, store, err := buildWatcher(cfg)
	if err != nil {
		return err
	}

	if flagRestore != "" {
		if err := store.Restore(flagRestore); err != nil {
			return err
		}
	}

	ctx, stop := signalContext()
	defer stop()
	return w.RunOnce(ctx)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	w, _, err := buildWatcher(cfg)
	if err != nil {
		return err
	}

	period := cfg.Period
	if flagPeriod > 0 {
		period = flagPeriod
	}

	ctx, stop := signalContext()
	defer stop()

	log.WithField("period", period).Info("starting watch loop")
	if err := w.Watch(ctx, period); err != nil && ctx.Err() == nil {
		return err
	}
	log.Info("shutting down")
	return nil
}

// runDiff compares two snapshot files offline and prints the report that a
// pass over them would have sent.
func runDiff(cmd *cobra.Command, args []string) error {
	store, err := storage.New(".", "archive")
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	oldSnap, err := store.Load(args[0])
	if err != nil {
		return err
	}
	newSnap, err := store.Load(args[1])
	if err != nil {
		return err
	}

	diff := course.Diff(oldSnap, newSnap)
	if diff.Empty() {
		fmt.Println("No changes.")
		return nil
	}

	fmt.Println(telegram.FormatTimeRange(storage.ModTime(args[0]), storage.ModTime(args[1])))
	fmt.Println()
	for _, block := range telegram.FormatReport(diff) {
		fmt.Println(block)
		fmt.Println()
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}

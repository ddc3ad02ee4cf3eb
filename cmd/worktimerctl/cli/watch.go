package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"worktimer/internal/core/model"
	"worktimer/internal/core/session"
	"worktimer/internal/core/timer"
	"worktimer/internal/platform"
	"worktimer/internal/storage"

	"github.com/spf13/cobra"
)

var (
	watchThreshold time.Duration
	watchInterval  time.Duration
	watchRecord    bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run a headless timer with inactivity detection",
	Long: `Start a timer and pause it whenever the system has been idle for longer
than --threshold. Transitions are logged until interrupted; the total is
printed on exit. With --record, worked intervals are written to the journal.`,
	Args: cobra.NoArgs,
	RunE: watch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchThreshold, "threshold", model.DefaultIdleThreshold, "idle time before the timer pauses")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", model.DefaultPollInterval, "how often the idle signal is polled")
	watchCmd.Flags().BoolVar(&watchRecord, "record", false, "record worked intervals in the journal")
	rootCmd.AddCommand(watchCmd)
}

func watch(cmd *cobra.Command, args []string) error {
	if watchThreshold <= 0 {
		return fmt.Errorf("--threshold must be positive, got %s", watchThreshold)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	options := session.Options{
		Idle:   platform.NewIdleSource(),
		Logger: slog.Default(),
	}
	if watchRecord {
		journal, err := openJournal()
		if err != nil {
			return err
		}
		defer journal.Close()
		options.OnSegment = recordSegment(journal)
	}

	workSession, err := session.New(model.MonitorConfig{
		IdleThreshold: watchThreshold,
		IdleEnabled:   true,
		PollInterval:  watchInterval,
	}, options)
	if err != nil {
		return err
	}

	elapsed := runWatch(ctx, workSession)
	if jsonOut {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]int64{"worked_seconds": int64(elapsed / time.Second)})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "worked %s\n", formatDuration(elapsed))
	return nil
}

// runWatch runs the session until ctx is done and returns the worked time.
func runWatch(ctx context.Context, workSession *session.Session) time.Duration {
	events := workSession.Subscribe(16)
	workSession.Start()
	workSession.Run()
	slog.Info("watching for inactivity", "threshold", watchThreshold, "interval", watchInterval)

	for {
		select {
		case <-ctx.Done():
			workSession.Stop()
			return workSession.Snapshot().Elapsed
		case event, ok := <-events:
			if !ok {
				return workSession.Snapshot().Elapsed
			}
			switch event.Type {
			case session.EventStateChange:
				slog.Info("state changed", "state", event.State, "worked", formatDuration(event.Elapsed))
			case session.EventSegment:
				slog.Debug("segment closed", "start", event.Start, "end", event.End)
			}
		}
	}
}

func recordSegment(journal *storage.Journal) func(timer.Segment) {
	return func(segment timer.Segment) {
		if err := journal.RecordSegment(segment.Start, segment.End); err != nil {
			slog.Warn("record segment", "error", err)
		}
	}
}

// Package cli implements the worktimerctl command-line interface using Cobra.
// It reads the same journal and idle sources as the tray app.
package cli

import (
	"fmt"

	"worktimer/internal/logging"
	"worktimer/internal/platform"
	"worktimer/internal/storage"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	jsonOut bool
	dataDir string
)

var rootCmd = &cobra.Command{
	Use:   "worktimerctl",
	Short: "Inspect and script WorkTimer from the terminal",
	Long: `worktimerctl reads the WorkTimer journal, manages todos and probes the
system idle signal without starting the tray app.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(logging.Options{
			Verbose:    verbose,
			JSONFormat: jsonOut,
			Stderr:     cmd.ErrOrStderr(),
		})
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding settings and the journal (default: user config dir)")
}

func resolveDataDir() (string, error) {
	if dataDir != "" {
		return dataDir, nil
	}
	dir, err := platform.DataDir(platform.NewService())
	if err != nil {
		return "", fmt.Errorf("resolving data dir: %w", err)
	}
	return dir, nil
}

func openJournal() (*storage.Journal, error) {
	dir, err := resolveDataDir()
	if err != nil {
		return nil, err
	}
	journal, err := storage.OpenJournal(storage.JournalPath(dir))
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	return journal, nil
}

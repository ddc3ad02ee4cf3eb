package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var statsDays int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show worked time per day",
	Long:  `Print the recorded work time for each of the last --days days, oldest first.`,
	Args:  cobra.NoArgs,
	RunE:  showStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsDays, "days", 7, "number of days to show")
	rootCmd.AddCommand(statsCmd)
}

type dayTotal struct {
	Day           string `json:"day"`
	WorkedSeconds int64  `json:"worked_seconds"`
}

func showStats(cmd *cobra.Command, args []string) error {
	if statsDays <= 0 {
		return fmt.Errorf("--days must be positive, got %d", statsDays)
	}
	journal, err := openJournal()
	if err != nil {
		return err
	}
	defer journal.Close()

	totals, err := journal.DailyTotals(time.Now(), statsDays)
	if err != nil {
		return fmt.Errorf("loading daily totals: %w", err)
	}

	if jsonOut {
		out := make([]dayTotal, 0, len(totals))
		for _, total := range totals {
			out = append(out, dayTotal{
				Day:           total.Day.Format(time.DateOnly),
				WorkedSeconds: int64(total.Total / time.Second),
			})
		}
		return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
	}

	var sum time.Duration
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DAY\tWORKED")
	for _, total := range totals {
		sum += total.Total
		fmt.Fprintf(w, "%s\t%s\n", total.Day.Format("Mon 2006-01-02"), formatDuration(total.Total))
	}
	fmt.Fprintf(w, "TOTAL\t%s\n", formatDuration(sum))
	return w.Flush()
}

// formatDuration renders d as H:MM:SS.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

package cli

import (
	"encoding/json"
	"fmt"

	"worktimer/internal/platform"

	"github.com/spf13/cobra"
)

var idleCmd = &cobra.Command{
	Use:   "idle",
	Short: "Print the system idle time",
	Long:  `Query the OS idle source once and print the seconds since the last input.`,
	Args:  cobra.NoArgs,
	RunE:  printIdle,
}

func init() {
	rootCmd.AddCommand(idleCmd)
}

func printIdle(cmd *cobra.Command, args []string) error {
	seconds, err := platform.NewIdleSource().IdleSeconds(cmd.Context())
	if err != nil {
		return fmt.Errorf("querying idle time: %w", err)
	}
	if jsonOut {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]float64{"idle_seconds": seconds})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%.1fs\n", seconds)
	return nil
}

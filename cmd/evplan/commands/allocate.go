package commands

import (
	"fmt"
	"strconv"

	"evplan/internal/stats"

	"github.com/spf13/cobra"
)

var allocateCmd = &cobra.Command{
	Use:   "allocate ITEM_ID EVENT_ID QUANTITY",
	Short: "Commit units of an inventory item to an event and persist the snapshot",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("quantity must be a whole number, got %q", args[2])
		}

		item, err := provider.Allocate(cmd.Context(), args[0], args[1], qty)
		if err != nil {
			return err
		}

		derived := stats.DeriveItem(item, cfg.StatsOptions())
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d of %d allocated, %d available (%s)\n",
			item.Name, derived.Allocated, item.TotalQuantity, derived.Available, derived.Status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(allocateCmd)
}

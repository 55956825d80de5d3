package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var recomputeCmd = &cobra.Command{
	Use:   "recompute [recipe-id]",
	Short: "Rebuild stored recipe macros from their composition rows",
	Long: `Recompute every recipe, or a single recipe when an id is given, from the
current ingredient values. Stored macros are rounded to the configured
precision. last_update is not changed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newServices(database, settings)
		ctx := cmd.Context()

		if len(args) == 1 {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil || id == 0 {
				return fmt.Errorf("invalid recipe id %q", args[0])
			}
			recipe, err := svc.Recipes.Recompute(ctx, uint(id))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recomputed recipe %d (%s)\n", recipe.ID, recipe.Name)
			return nil
		}

		count, err := svc.Recipes.RecomputeAll(ctx, settings.Macros.RecomputeConcurrency)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Recomputed %d recipes\n", count)
		return nil
	},
}

func init() {
	recomputeCmd.Flags().Int("concurrency", 0, "recipes recomputed in parallel (default RECOMPUTE_CONCURRENCY)")
}

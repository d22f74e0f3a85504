package main

import (
	"context"
	"fmt"

	"github.com/elev8ted-roofs/estimator-api/internal/platform/config"
	firestoreclient "github.com/elev8ted-roofs/estimator-api/internal/platform/firestore"
	"github.com/elev8ted-roofs/estimator-api/internal/repository"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and maintain the Firestore estimate archive",
		Long: `Inspect and maintain archived estimates.

Requires FIREBASE_PROJECT_ID plus FIREBASE_CREDS_BASE64 or FIREBASE_CREDS_FILE.`,
	}
	cmd.AddCommand(newHistoryListCmd(), newHistoryShowCmd(), newHistoryNormalizeCmd())
	return cmd
}

// withRepository opens the archive for the duration of fn.
func withRepository(ctx context.Context, fn func(*repository.EstimateRepository) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	client, _, err := firestoreclient.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()
	return fn(repository.NewEstimateRepository(client))
}

func newHistoryListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent estimates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRepository(cmd.Context(), func(repo *repository.EstimateRepository) error {
				recs, err := repo.ListRecent(cmd.Context(), limit)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), recs)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of estimates to show")
	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one archived estimate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(cmd.Context(), func(repo *repository.EstimateRepository) error {
				rec, err := repo.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), rec)
			})
		},
	}
}

func newHistoryNormalizeCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "normalize-addresses",
		Short: "Clean stored addresses and recompute their hashes",
		Long: `Clean stored addresses and recompute their hashes so estimates for the
same property group together in stats.

Examples:
  roofcalc history normalize-addresses --dry-run
  roofcalc history normalize-addresses`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			return withRepository(cmd.Context(), func(repo *repository.EstimateRepository) error {
				fixes, total, err := repo.PendingAddressFixes(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Total estimates: %d\nNeed cleanup:    %d\n", total, len(fixes))
				if len(fixes) == 0 {
					return nil
				}
				if dryRun {
					for i, fix := range fixes {
						if i == 5 {
							break
						}
						fmt.Fprintf(out, "  %s: %q -> %q\n", fix.ID, fix.Before, fix.After)
					}
					fmt.Fprintf(out, "[DRY-RUN] Would update %d estimates.\n", len(fixes))
					return nil
				}
				updated, err := repo.ApplyAddressFixes(cmd.Context(), fixes, func(done int) {
					fmt.Fprintf(out, "  Progress: %d/%d\n", done, len(fixes))
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Updated %d estimates.\n", updated)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "preview changes without writing")
	return cmd
}

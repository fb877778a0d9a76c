package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"grana/internal/common"
	"grana/internal/dedup"
)

// dedupCmd collapses duplicate transactions already in the store. It is a
// separate maintenance step rather than part of ingestion: re-importing an
// overlapping statement is the usual source of duplicates, and the user
// decides when to clean up.
func dedupCmd() *cobra.Command {
	var apply, merge bool

	cmd := &cobra.Command{
		Use:   "dedup",
		Short: "Find and remove duplicate transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			transactions, err := store.GetTransactions(ctx)
			if err != nil {
				return err
			}

			cleaned := dedup.Dedupe(transactions)
			if merge {
				cleaned = dedup.Merge(transactions)
			}

			removed := len(transactions) - len(cleaned)
			if removed == 0 {
				fmt.Println("no duplicates found")
				return nil
			}

			if !apply {
				fmt.Printf("%d duplicates found; rerun with --apply to remove them\n", removed)
				return nil
			}

			// Single transaction: a failed replace keeps the full history.
			if err := store.ReplaceTransactions(ctx, cleaned); err != nil {
				return common.NewUserError("failed to save deduplicated transactions", err)
			}

			common.LogInfo("removed duplicate transactions", common.Fields{"removed": removed})
			fmt.Printf("removed %d duplicates, %d transactions remain\n", removed, len(cleaned))
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "persist the deduplicated set")
	cmd.Flags().BoolVar(&merge, "merge", false, "fuse duplicate details instead of dropping them")
	return cmd
}

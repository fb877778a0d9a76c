package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"grana/internal/common"
)

func resetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all stored transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if !force {
				return common.NewUserError("refusing to clear transactions without --force", nil)
			}

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.ClearTransactions(ctx); err != nil {
				return common.NewUserError("failed to clear transactions", err)
			}

			fmt.Println("all transactions cleared")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "confirm the bulk delete")
	return cmd
}

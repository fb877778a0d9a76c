package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"grana/internal/autolimit"
	"grana/internal/cli"
	"grana/internal/common"
	"grana/internal/config"
	"grana/internal/model"
)

func limitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "limits",
		Short: "Derive per-category spending limits from recent history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			snap, err := store.LoadSnapshot(ctx)
			if err != nil {
				return err
			}
			if len(snap.Transactions) == 0 {
				return common.NewUserError("ingest a statement first", common.ErrNoTransactions)
			}

			profile := config.ProfileFromViper()
			startingBalance := snap.StartingBalance
			if startingBalance == 0 {
				startingBalance = profile.StartingBalance
			}
			salary := snap.Salary
			if salary == 0 {
				salary = profile.Salary
			}

			categories := model.StandardCategories()
			for _, name := range snap.CustomCategories {
				categories = append(categories, model.Category(name))
			}

			limits := autolimit.ComputeAutoLimits(snap.Transactions, categories, salary, startingBalance, time.Now())
			fmt.Println(cli.RenderAutoLimits(limits, categories))
			return nil
		},
	}
}

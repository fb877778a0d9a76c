package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"grana/internal/cli"
	"grana/internal/config"
	"grana/internal/metrics"
	"grana/internal/model"
)

func metricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Show month-to-date metrics and the end-of-month forecast",
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

			profile := config.ProfileFromViper()
			startingBalance := snap.StartingBalance
			if startingBalance == 0 {
				startingBalance = profile.StartingBalance
			}
			salary := snap.Salary
			if salary == 0 {
				salary = profile.Salary
			}

			now := time.Now()
			m := metrics.ComputeMonthlyMetrics(snap.Transactions, startingBalance, now)
			fmt.Println(cli.RenderMonthlyMetrics(m))

			goals := mergedGoals(snap.Goals, profile.Goals)
			for _, category := range model.StandardCategories() {
				goal, ok := goals[category]
				if !ok {
					continue
				}
				cm := metrics.ComputeCategoryMetrics(snap.Transactions, category, goal, salary, now)
				fmt.Printf("%-24s R$ %9.2f / %9.2f  [%s]\n", cm.Category, cm.TotalSpent, cm.Goal, cm.Status)
			}
			return nil
		},
	}
}

// mergedGoals overlays config-file goals on top of persisted ones.
func mergedGoals(persisted, configured map[model.Category]float64) map[model.Category]float64 {
	goals := make(map[model.Category]float64, len(persisted)+len(configured))
	for category, amount := range persisted {
		goals[category] = amount
	}
	for category, amount := range configured {
		goals[category] = amount
	}
	return goals
}

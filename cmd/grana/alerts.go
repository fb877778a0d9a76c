package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"grana/internal/alert"
	"grana/internal/anomaly"
	"grana/internal/cli"
	"grana/internal/common"
	"grana/internal/config"
	"grana/internal/metrics"
	"grana/internal/model"
)

func alertsCmd() *cobra.Command {
	var showFindings bool

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Run the detectors and show critical alerts",
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

			now := time.Now()
			m := metrics.ComputeMonthlyMetrics(snap.Transactions, startingBalance, now)

			alerts := alert.Synthesize(ctx, alert.Input{
				Transactions: snap.Transactions,
				Metrics:      m,
				Goals:        mergedGoals(snap.Goals, profile.Goals),
				Salary:       salary,
				Now:          now,
			})
			fmt.Println(cli.RenderAlerts(alerts))

			if !showFindings {
				return nil
			}

			detectors := []func() string{
				func() string { return renderFindings("Compras fora do padrao", anomaly.DetectLargePurchases(snap.Transactions)) },
				func() string {
					return renderFindings("Transferencias incomuns", anomaly.DetectUnusualRecipients(snap.Transactions))
				},
				func() string { return renderFindings("Cobrancas duplicadas", anomaly.DetectDuplicateCharges(snap.Transactions)) },
				func() string { return renderFindings("Tarifas inesperadas", anomaly.DetectUnexpectedFees(snap.Transactions)) },
				func() string {
					return renderFindings("Assinaturas escondidas", anomaly.DetectHiddenRecurring(snap.Transactions))
				},
			}
			for _, run := range detectors {
				if out := run(); out != "" {
					fmt.Println(out)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showFindings, "findings", false, "also list raw detector findings")
	return cmd
}

func renderFindings(title string, findings []model.Finding) string {
	if len(findings) == 0 {
		return ""
	}
	out := cli.TitleStyle.Render(title) + "\n"
	for _, f := range findings {
		out += fmt.Sprintf("  [%s] %s\n", f.Severity, f.Message)
	}
	return out
}

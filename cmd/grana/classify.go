package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"grana/internal/common"
)

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [description] [amount]",
		Short: "Classify a single transaction description",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return common.NewUserError("amount must be a number (negative for expenses)", err)
			}

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			result := newClassifier(store).Classify(ctx, args[0], amount)
			fmt.Printf("%s (%s, confidence %.2f, source %s)\n",
				result.Category, result.Direction, result.Confidence, result.Source)
			return nil
		},
	}
}

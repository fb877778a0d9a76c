package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"grana/internal/common"
	"grana/internal/model"
)

func learnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "learn [description] [amount] [category]",
		Short: "Record a category correction for future classifications",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return common.NewUserError("amount must be a number (negative for expenses)", err)
			}

			direction := model.DirectionExpense
			if amount > 0 {
				direction = model.DirectionIncome
			}
			category := model.Category(strings.ToUpper(args[2]))

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := newClassifier(store).Learn(ctx, args[0], amount, category, direction); err != nil {
				return common.NewUserError("failed to store correction", err)
			}

			fmt.Printf("learned: %q -> %s\n", args[0], category)
			return nil
		},
	}
}

func unlearnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlearn [description]",
		Short: "Forget a previously learned correction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := newClassifier(store).Unlearn(ctx, args[0]); err != nil {
				return common.NewUserError("failed to remove correction", err)
			}

			fmt.Printf("forgot: %q\n", args[0])
			return nil
		},
	}
}

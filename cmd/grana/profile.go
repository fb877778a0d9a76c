package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"grana/internal/common"
	"grana/internal/model"
)

// setCmd persists the profile numbers the derived metrics need. Values land
// in the database through the save queue; the config file keeps working as a
// fallback for anything never set here.
func setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [salary|balance] [amount]",
		Short: "Persist a profile setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return common.NewUserError("amount must be a number", err)
			}

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			snap, err := store.LoadSnapshot(ctx)
			if err != nil {
				return err
			}

			switch args[0] {
			case "salary":
				snap.Salary = amount
			case "balance":
				snap.StartingBalance = amount
			default:
				return common.NewUserError(fmt.Sprintf("unknown setting %q, expected salary or balance", args[0]), nil)
			}
			snap.AsOf = time.Now()

			persistSnapshot(store, *snap)
			fmt.Printf("%s set to %.2f\n", args[0], amount)
			return nil
		},
	}
}

func goalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goal [category] [amount]",
		Short: "Set a monthly spending goal for a category (0 clears it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return common.NewUserError("amount must be a number", err)
			}
			if amount < 0 {
				return common.NewUserError("goal must not be negative", nil)
			}
			category := model.Category(strings.ToUpper(args[0]))

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			snap, err := store.LoadSnapshot(ctx)
			if err != nil {
				return err
			}

			if amount == 0 {
				delete(snap.Goals, category)
			} else {
				snap.Goals[category] = amount
			}

			persistSnapshot(store, *snap)
			if amount == 0 {
				fmt.Printf("goal for %s cleared\n", category)
			} else {
				fmt.Printf("goal for %s set to %.2f\n", category, amount)
			}
			return nil
		},
	}
}

func categoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage custom categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add [name]",
		Short: "Add a custom category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			name := strings.ToUpper(args[0])
			if model.Category(name).IsStandard() {
				return common.NewUserError(fmt.Sprintf("%s is already a standard category", name), nil)
			}

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			snap, err := store.LoadSnapshot(ctx)
			if err != nil {
				return err
			}

			for _, existing := range snap.CustomCategories {
				if existing == name {
					fmt.Printf("%s already exists\n", name)
					return nil
				}
			}
			snap.CustomCategories = append(snap.CustomCategories, name)

			persistSnapshot(store, *snap)
			fmt.Printf("added category %s\n", name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove [name]",
		Short: "Remove a custom category and its goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			name := strings.ToUpper(args[0])

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			snap, err := store.LoadSnapshot(ctx)
			if err != nil {
				return err
			}

			kept := snap.CustomCategories[:0]
			for _, existing := range snap.CustomCategories {
				if existing != name {
					kept = append(kept, existing)
				}
			}
			snap.CustomCategories = kept
			delete(snap.Goals, model.Category(name))

			persistSnapshot(store, *snap)
			fmt.Printf("removed category %s\n", name)
			return nil
		},
	})

	return cmd
}

package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"grana/internal/autolimit"
	"grana/internal/cli"
	"grana/internal/model"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List known categories",
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

			fmt.Println(cli.TitleStyle.Render("Categorias"))
			categories := model.StandardCategories()
			categories = append(categories, model.CategorySalario, model.CategoryTransferenciaRecebida)
			for _, name := range snap.CustomCategories {
				categories = append(categories, model.Category(name))
			}

			for _, category := range categories {
				label := lipgloss.NewStyle().
					Foreground(lipgloss.Color(category.DisplayColor())).
					Render(string(category))
				suffix := ""
				if autolimit.IsProtected(category) {
					suffix = cli.SubtleStyle.Render("  (protegida)")
				}
				if !category.IsStandard() {
					suffix = cli.SubtleStyle.Render("  (personalizada)")
				}
				fmt.Printf("  %s%s\n", label, suffix)
			}
			return nil
		},
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/saborexpress/app/api"
	"github.com/shashiranjanraj/saborexpress/app/models"
	"github.com/shashiranjanraj/saborexpress/config"
)

var menuCategoryFlag string

// sabor menu: print the remote menu.
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Print the menu served by the ordering API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		client := api.New(config.APIBaseURL())
		var (
			items []models.Item
			err   error
		)
		if menuCategoryFlag != "" {
			cat := models.Category(menuCategoryFlag)
			if !cat.Valid() {
				return fmt.Errorf("unknown category %q", menuCategoryFlag)
			}
			items, err = client.ItemsByCategory(ctx, cat)
		} else {
			items, err = client.ListItems(ctx)
		}
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}
		return printMenu(os.Stdout, items)
	},
}

func printMenu(w io.Writer, items []models.Item) error {
	if len(items) == 0 {
		fmt.Fprintln(w, "The menu is empty.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "KEY\tNOMBRE\tCATEGORIA\tPRECIO\tDISPONIBLE")
	fmt.Fprintln(tw, "---\t------\t---------\t------\t----------")
	for _, it := range items {
		available := "no"
		if it.Disponibilidad {
			available = "sí"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", it.Key(), it.Nombre, it.Categoria, it.Precio, available)
	}
	return tw.Flush()
}

func init() {
	menuCmd.Flags().StringVarP(&menuCategoryFlag, "categoria", "c", "", "Only items of this category (ENTRADA, PLATO_PRINCIPAL, POSTRES, BEBIDAS)")
}

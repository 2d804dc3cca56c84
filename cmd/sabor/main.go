package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/saborexpress/app/api"
	"github.com/shashiranjanraj/saborexpress/app/routes"
	"github.com/shashiranjanraj/saborexpress/app/stores"
	"github.com/shashiranjanraj/saborexpress/config"
	"github.com/shashiranjanraj/saborexpress/pkg/app"
	"github.com/shashiranjanraj/saborexpress/pkg/router"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "sabor",
	Short:         "Sabor Express storefront",
	Long:          "Sabor Express serves the restaurant storefront in front of the ordering API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(versionCmd)
}

// storefront assembles the application against the configured API.
func storefront() *app.Application {
	client := api.New(config.APIBaseURL())
	return app.New().
		Use(stores.Middleware(client)).
		Routes(func(r *router.Router, s *app.Services) {
			routes.RegisterWeb(r, routes.Deps{API: client, Pool: s.Pool, Disk: s.Disk})
		})
}

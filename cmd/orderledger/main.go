package main

import (
	"os"

	"github.com/groblegark/orderledger/internal/client"
	"github.com/spf13/cobra"
)

var (
	httpURL    string
	token      string
	jsonOutput bool

	ordersClient client.OrdersClient
)

func defaultHTTPURL() string {
	if s := os.Getenv("ORDERLEDGER_HTTP_URL"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

func defaultToken() string {
	return os.Getenv("ORDERLEDGER_TOKEN")
}

var rootCmd = &cobra.Command{
	Use:   "orderledger <command>",
	Short: "CLI client for the orderledger service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ordersClient = client.NewHTTPClient(httpURL, token)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if ordersClient != nil {
			ordersClient.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&httpURL, "http-url", defaultHTTPURL(), "HTTP server URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", defaultToken(), "bearer token for authentication")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddGroup(
		&cobra.Group{ID: "orders", Title: "Orders:"},
		&cobra.Group{ID: "notes", Title: "Notes:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	cobra.EnableCommandSorting = false
	rootCmd.SetHelpFunc(colorizedHelpFunc())

	// Orders
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(eventsCmd)

	// Notes
	rootCmd.AddCommand(noteCmd)

	// System
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

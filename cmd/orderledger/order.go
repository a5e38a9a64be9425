package main

import (
	"context"
	"fmt"

	"github.com/groblegark/orderledger/internal/client"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:     "create",
	Short:   "Create a new order",
	GroupID: "orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		channelID, _ := cmd.Flags().GetString("channel")

		req := &client.CreateOrderRequest{
			Status:    status,
			ChannelID: channelID,
		}

		order, err := ordersClient.CreateOrder(context.Background(), req)
		if err != nil {
			return fmt.Errorf("creating order: %w", err)
		}

		if jsonOutput {
			return printJSON(order)
		}
		printOrderDetail(order)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:     "show <order-id>",
	Short:   "Show an order and its event log",
	GroupID: "orders",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := ordersClient.GetOrder(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("fetching order: %w", err)
		}

		if jsonOutput {
			return printJSON(order)
		}
		printOrderDetail(order)
		if len(order.Events) > 0 {
			fmt.Println()
			printEventList(order.Events)
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List orders",
	GroupID: "orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetStringSlice("status")
		channelID, _ := cmd.Flags().GetString("channel")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		req := &client.ListOrdersRequest{
			Status:    status,
			ChannelID: channelID,
			Limit:     limit,
			Offset:    offset,
		}

		resp, err := ordersClient.ListOrders(context.Background(), req)
		if err != nil {
			return fmt.Errorf("listing orders: %w", err)
		}

		if jsonOutput {
			return printJSON(resp)
		}
		printOrderTable(resp.Orders, resp.Total)
		return nil
	},
}

var eventsCmd = &cobra.Command{
	Use:     "events <order-id>",
	Short:   "List the event log of an order",
	GroupID: "orders",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := ordersClient.GetEvents(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("fetching events: %w", err)
		}

		if jsonOutput {
			return printJSON(events)
		}
		if len(events) == 0 {
			fmt.Println("No events found.")
			return nil
		}
		printEventList(events)
		return nil
	},
}

func init() {
	createCmd.Flags().StringP("status", "s", "", "initial order status (default unconfirmed)")
	createCmd.Flags().StringP("channel", "c", "", "channel the order belongs to")

	listCmd.Flags().StringSliceP("status", "s", nil, "filter by status (repeatable)")
	listCmd.Flags().StringP("channel", "c", "", "filter by channel")
	listCmd.Flags().Int("limit", 20, "maximum number of orders to return")
	listCmd.Flags().Int("offset", 0, "offset for pagination")
}

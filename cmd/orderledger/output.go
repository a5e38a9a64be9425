package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/groblegark/orderledger/internal/client"
	"github.com/groblegark/orderledger/internal/model"
)

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printOrderDetail(order *model.Order) {
	fmt.Printf("ID:         %s\n", order.ID)
	fmt.Printf("Number:     %d\n", order.Number)
	fmt.Printf("Status:     %s\n", order.Status)
	fmt.Printf("Channel:    %s\n", order.ChannelID)
	if !order.CreatedAt.IsZero() {
		fmt.Printf("Created At: %s\n", order.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if !order.UpdatedAt.IsZero() {
		fmt.Printf("Updated At: %s\n", order.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
}

func printOrderTable(orders []*model.Order, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNUMBER\tSTATUS\tCHANNEL\tCREATED")
	for _, o := range orders {
		created := ""
		if !o.CreatedAt.IsZero() {
			created = o.CreatedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
			o.ID,
			o.Number,
			o.Status,
			o.ChannelID,
			created,
		)
	}
	w.Flush()
	fmt.Printf("\n%d orders (%d total)\n", len(orders), total)
}

func printEventList(events []*model.OrderEvent) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tACTOR\tDETAIL\tCREATED")
	for _, e := range events {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.Kind,
			actorLabel(e.Actor),
			eventDetail(e),
			e.CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	w.Flush()
}

func printNoteResult(result *client.NoteResult) {
	e := result.Event
	fmt.Printf("Note:       %d\n", e.ID)
	fmt.Printf("Order:      %s\n", e.OrderID)
	fmt.Printf("Kind:       %s\n", e.Kind)
	if actor := actorLabel(e.Actor); actor != "" {
		fmt.Printf("Actor:      %s\n", actor)
	}
	if msg := e.Message(); msg != "" {
		fmt.Printf("Message:    %s\n", msg)
	}
	if related := e.RelatedID(); related != 0 {
		fmt.Printf("Removes:    %d\n", related)
	}
	if !e.CreatedAt.IsZero() {
		fmt.Printf("Created At: %s\n", e.CreatedAt.Format("2006-01-02 15:04:05"))
	}
}

func actorLabel(a model.Actor) string {
	switch {
	case a.UserID != "":
		return a.UserID
	case a.AppID != "":
		return "app:" + a.AppID
	default:
		return ""
	}
}

// eventDetail summarizes an event's parameters for table output.
func eventDetail(e *model.OrderEvent) string {
	if msg := e.Message(); msg != "" {
		if len(msg) > 50 {
			msg = msg[:47] + "..."
		}
		return msg
	}
	if related := e.RelatedID(); related != 0 {
		return fmt.Sprintf("removes note %d", related)
	}
	return ""
}

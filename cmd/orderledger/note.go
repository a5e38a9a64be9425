package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var noteCmd = &cobra.Command{
	Use:     "note",
	Short:   "Manage order notes",
	GroupID: "notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add <order-id> <message>...",
	Short: "Attach a note to an order",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		orderID := args[0]
		message := strings.Join(args[1:], " ")

		result, err := ordersClient.AddNote(context.Background(), orderID, message)
		if err != nil {
			return fmt.Errorf("adding note: %w", err)
		}

		if jsonOutput {
			return printJSON(result)
		}
		printNoteResult(result)
		return nil
	},
}

var noteUpdateCmd = &cobra.Command{
	Use:   "update <note-id> <message>...",
	Short: "Replace the message of an existing note",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		noteID, err := parseNoteID(args[0])
		if err != nil {
			return err
		}
		message := strings.Join(args[1:], " ")

		result, err := ordersClient.UpdateNote(context.Background(), noteID, message)
		if err != nil {
			return fmt.Errorf("updating note: %w", err)
		}

		if jsonOutput {
			return printJSON(result)
		}
		printNoteResult(result)
		return nil
	},
}

var noteRemoveCmd = &cobra.Command{
	Use:   "remove <note-id>",
	Short: "Remove a note from its order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		noteID, err := parseNoteID(args[0])
		if err != nil {
			return err
		}

		result, err := ordersClient.RemoveNote(context.Background(), noteID)
		if err != nil {
			return fmt.Errorf("removing note: %w", err)
		}

		if jsonOutput {
			return printJSON(result)
		}
		printNoteResult(result)
		return nil
	},
}

func parseNoteID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id %q: expected a positive integer", s)
	}
	return id, nil
}

func init() {
	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteUpdateCmd)
	noteCmd.AddCommand(noteRemoveCmd)
}

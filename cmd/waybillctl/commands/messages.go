package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewMessagesCommand creates the messages command group.
func NewMessagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Browse your in-app messages",
	}

	cmd.AddCommand(newMessagesListCommand())
	cmd.AddCommand(newMessagesGetCommand())
	cmd.AddCommand(newMessagesMarkReadCommand())

	return cmd
}

func newMessagesListCommand() *cobra.Command {
	var (
		pageNo   int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			page, err := client.Messages().MyPage(context.Background(), pageNo, pageSize)
			if err != nil {
				return fmt.Errorf("failed to list messages: %w", err)
			}

			if handled, err := renderStructured(page); handled {
				return err
			}

			if page == nil || len(page.List) == 0 {
				fmt.Println("No messages")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Title", "Read", "Received")

			for _, message := range page.List {
				read := "no"
				if message.Read {
					read = "yes"
				}

				received := NotAvailable
				if message.CreateTime > 0 {
					received = time.UnixMilli(message.CreateTime).Format("2006-01-02 15:04")
				}

				_ = table.Append(formatInt(message.ID), orNA(message.Title), read, received)
			}

			return table.Render()
		},
	}

	cmd.Flags().IntVar(&pageNo, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 10, "page size")

	return cmd
}

func newMessagesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <message-id>",
		Short: "Show one message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid message ID %q: %w", args[0], err)
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			message, err := client.Messages().Get(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to get message: %w", err)
			}

			if handled, err := renderStructured(message); handled {
				return err
			}

			fmt.Printf("%s\n\n%s\n", orNA(message.Title), message.Content)

			return nil
		},
	}
}

func newMessagesMarkReadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mark-read <message-id>...",
		Short: "Mark messages as read",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))

			for _, arg := range args {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid message ID %q: %w", arg, err)
				}

				ids = append(ids, id)
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			_, err = client.Messages().MarkRead(context.Background(), ids)
			if err != nil {
				return fmt.Errorf("failed to mark messages read: %w", err)
			}

			fmt.Printf("Marked %d message(s) as read\n", len(ids))

			return nil
		},
	}
}

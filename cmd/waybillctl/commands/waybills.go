package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/freightflow/waybill-client/pkg/waybill"
)

// NewWaybillsCommand creates the waybills command group.
func NewWaybillsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waybills",
		Short: "Browse and manage your waybills",
	}

	cmd.AddCommand(newWaybillsPageCommand("recent", "List your recent searches",
		func(ctx context.Context, client waybill.Client, pageNo, pageSize int) (*waybill.Page[waybill.Waybill], error) {
			return client.Waybills().RecentSearchPage(ctx, pageNo, pageSize)
		}))
	cmd.AddCommand(newWaybillsPageCommand("sent", "List waybills you sent",
		func(ctx context.Context, client waybill.Client, pageNo, pageSize int) (*waybill.Page[waybill.Waybill], error) {
			return client.Waybills().SendOrderPage(ctx, pageNo, pageSize)
		}))
	cmd.AddCommand(newWaybillsPageCommand("received", "List waybills addressed to you",
		func(ctx context.Context, client waybill.Client, pageNo, pageSize int) (*waybill.Page[waybill.Waybill], error) {
			return client.Waybills().CollectOrderPage(ctx, pageNo, pageSize)
		}))
	cmd.AddCommand(newWaybillsPageCommand("subscribed", "List waybills you subscribed to",
		func(ctx context.Context, client waybill.Client, pageNo, pageSize int) (*waybill.Page[waybill.Waybill], error) {
			return client.Waybills().SubscribePage(ctx, pageNo, pageSize)
		}))
	cmd.AddCommand(newWaybillsSubscribeCommand())
	cmd.AddCommand(newWaybillsMarkCommand())

	return cmd
}

type waybillPageFunc func(ctx context.Context, client waybill.Client, pageNo, pageSize int) (*waybill.Page[waybill.Waybill], error)

func newWaybillsPageCommand(use, short string, fetch waybillPageFunc) *cobra.Command {
	var (
		pageNo   int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			page, err := fetch(context.Background(), client, pageNo, pageSize)
			if err != nil {
				return fmt.Errorf("failed to list waybills: %w", err)
			}

			if handled, err := renderStructured(page); handled {
				return err
			}

			if page == nil || len(page.List) == 0 {
				fmt.Println("No waybills")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Code", "Carrier", "Status", "Receiver")

			for _, wb := range page.List {
				_ = table.Append(wb.WaybillCode, orNA(wb.CompanyName), fmt.Sprintf("%d", wb.Status), orNA(wb.ReceiverName))
			}

			err = table.Render()
			if err != nil {
				return err
			}

			fmt.Printf("Total: %d\n", page.Total)

			return nil
		},
	}

	cmd.Flags().IntVar(&pageNo, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 10, "page size")

	return cmd
}

func newWaybillsSubscribeCommand() *cobra.Command {
	var (
		companyID   int64
		unsubscribe bool
	)

	cmd := &cobra.Command{
		Use:   "subscribe <waybill-code>",
		Short: "Subscribe to (or unsubscribe from) waybill updates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ok, err := client.Waybills().Subscribe(context.Background(), args[0], companyID, !unsubscribe)
			if err != nil {
				return fmt.Errorf("subscription update failed: %w", err)
			}

			if !ok {
				fmt.Println("Subscription not changed")

				return nil
			}

			if unsubscribe {
				fmt.Println("Unsubscribed")
			} else {
				fmt.Println("Subscribed")
			}

			return nil
		},
	}

	cmd.Flags().Int64Var(&companyID, "company", 0, "carrier company ID")
	cmd.Flags().BoolVar(&unsubscribe, "remove", false, "unsubscribe instead")

	return cmd
}

func newWaybillsMarkCommand() *cobra.Command {
	var companyID int64

	cmd := &cobra.Command{
		Use:   "mark <waybill-code>",
		Short: "Record a waybill in your recent searches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			_, err = client.Waybills().MarkRecentSearch(context.Background(), args[0], companyID)
			if err != nil {
				return fmt.Errorf("failed to mark waybill: %w", err)
			}

			fmt.Println("Marked")

			return nil
		},
	}

	cmd.Flags().Int64Var(&companyID, "company", 0, "carrier company ID")

	return cmd
}

// renderWaybillTable prints a single waybill as a property table.
func renderWaybillTable(wb *waybill.Waybill) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("Code", wb.WaybillCode)
	_ = table.Append("Carrier", orNA(wb.CompanyName))
	_ = table.Append("Status", fmt.Sprintf("%d", wb.Status))
	_ = table.Append("Sender", orNA(wb.SenderName))
	_ = table.Append("Sender Address", orNA(wb.SenderAddress))
	_ = table.Append("Receiver", orNA(wb.ReceiverName))
	_ = table.Append("Receiver Address", orNA(wb.ReceiverAddress))

	return table.Render()
}

package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewTrackCommand creates the track command.
func NewTrackCommand() *cobra.Command {
	var companyID int64

	cmd := &cobra.Command{
		Use:   "track <waybill-code>",
		Short: "Show the tracking timeline for a waybill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			waybillCode := args[0]

			info, err := client.Waybills().GetInfo(ctx, waybillCode, companyID)
			if err != nil {
				return fmt.Errorf("failed to get waybill info: %w", err)
			}

			track, err := client.Waybills().GetTrackInfo(ctx, waybillCode, companyID)
			if err != nil {
				return fmt.Errorf("failed to get track info: %w", err)
			}

			if handled, err := renderStructured(map[string]interface{}{
				"info":  info,
				"track": track,
			}); handled {
				return err
			}

			if info != nil {
				fmt.Printf("Waybill %s (%s)\n", info.WaybillCode, orNA(info.CompanyName))
				fmt.Printf("From %s to %s\n\n", orNA(info.SenderAddress), orNA(info.ReceiverAddress))
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Time", "Location", "Description")

			for _, node := range track {
				ts := time.UnixMilli(node.TrackTime).Format("2006-01-02 15:04")
				_ = table.Append(ts, orNA(node.Location), orNA(node.Description))
			}

			return table.Render()
		},
	}

	cmd.Flags().Int64Var(&companyID, "company", 0, "carrier company ID")

	return cmd
}

// NewSearchCommand creates the search command.
func NewSearchCommand() *cobra.Command {
	var companyID int64

	cmd := &cobra.Command{
		Use:   "search <waybill-code>",
		Short: "Search for a waybill",
		Long: `Search for a waybill across all carriers, or at a single carrier with
--company. The cross-carrier search requires a session; the single-carrier
variant is anonymous.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			waybillCode := args[0]

			if companyID > 0 {
				result, err := client.Waybills().SearchByCompany(ctx, waybillCode, companyID)
				if err != nil {
					return fmt.Errorf("search failed: %w", err)
				}

				if result == nil {
					fmt.Println("No waybill found")

					return nil
				}

				if handled, err := renderStructured(result); handled {
					return err
				}

				return renderWaybillTable(result)
			}

			results, err := client.Waybills().Search(ctx, waybillCode)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			if handled, err := renderStructured(results); handled {
				return err
			}

			if len(results) == 0 {
				fmt.Println("No waybill found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Code", "Carrier", "Status", "Receiver")

			for _, wb := range results {
				_ = table.Append(wb.WaybillCode, orNA(wb.CompanyName), fmt.Sprintf("%d", wb.Status), orNA(wb.ReceiverName))
			}

			return table.Render()
		},
	}

	cmd.Flags().Int64Var(&companyID, "company", 0, "carrier company ID (anonymous single-carrier search)")

	return cmd
}

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/freightflow/waybill-client/pkg/waybill"
)

// NewRoutesCommand creates the routes command.
func NewRoutesCommand() *cobra.Command {
	var (
		companyID  int64
		startPoint string
		endPoint   string
		pageNo     int
		pageSize   int
	)

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List freight routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			page, err := client.Routes().Page(context.Background(), waybill.RoutePageParams{
				CompanyID:  companyID,
				StartPoint: startPoint,
				EndPoint:   endPoint,
				PageNo:     pageNo,
				PageSize:   pageSize,
			})
			if err != nil {
				return fmt.Errorf("failed to list routes: %w", err)
			}

			if handled, err := renderStructured(page); handled {
				return err
			}

			if page == nil || len(page.List) == 0 {
				fmt.Println("No routes")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("From", "To", "Duration", "Price")

			for _, route := range page.List {
				_ = table.Append(route.StartPoint, route.EndPoint, orNA(route.Duration), fmt.Sprintf("%.2f", route.Price))
			}

			err = table.Render()
			if err != nil {
				return err
			}

			fmt.Printf("Total: %d\n", page.Total)

			return nil
		},
	}

	cmd.Flags().Int64Var(&companyID, "company", 0, "carrier company ID")
	cmd.Flags().StringVar(&startPoint, "from", "", "start point filter")
	cmd.Flags().StringVar(&endPoint, "to", "", "end point filter")
	cmd.Flags().IntVar(&pageNo, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 10, "page size")

	return cmd
}

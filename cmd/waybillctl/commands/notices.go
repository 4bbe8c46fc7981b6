package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/freightflow/waybill-client/pkg/waybill"
)

// NewNoticesCommand creates the notices command group.
func NewNoticesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notices",
		Short: "Browse notices and announcements",
	}

	cmd.AddCommand(newNoticesListCommand())
	cmd.AddCommand(newNoticesGetCommand())

	return cmd
}

func newNoticesListCommand() *cobra.Command {
	var (
		companyID int64
		pageNo    int
		pageSize  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notices",
		Long: `List platform notices, or a carrier's own notices when --company is
given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			params := waybill.NoticePageParams{
				CompanyID: companyID,
				PageNo:    pageNo,
				PageSize:  pageSize,
			}

			var (
				page    *waybill.Page[waybill.Notice]
				listErr error
			)

			if companyID > 0 {
				page, listErr = client.Notices().CompanyPage(context.Background(), params)
			} else {
				page, listErr = client.Notices().Page(context.Background(), params)
			}

			if listErr != nil {
				return fmt.Errorf("failed to list notices: %w", listErr)
			}

			if handled, err := renderStructured(page); handled {
				return err
			}

			if page == nil || len(page.List) == 0 {
				fmt.Println("No notices")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Title", "Published")

			for _, notice := range page.List {
				published := NotAvailable
				if notice.CreateTime > 0 {
					published = time.UnixMilli(notice.CreateTime).Format("2006-01-02")
				}

				_ = table.Append(formatInt(notice.ID), notice.Title, published)
			}

			return table.Render()
		},
	}

	cmd.Flags().Int64Var(&companyID, "company", 0, "carrier company ID")
	cmd.Flags().IntVar(&pageNo, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 10, "page size")

	return cmd
}

func newNoticesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <notice-id>",
		Short: "Show one notice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid notice ID %q: %w", args[0], err)
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			notice, err := client.Notices().Get(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to get notice: %w", err)
			}

			if handled, err := renderStructured(notice); handled {
				return err
			}

			fmt.Printf("%s\n\n%s\n", notice.Title, notice.Content)

			return nil
		},
	}
}

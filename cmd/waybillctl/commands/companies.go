package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewCompaniesCommand creates the companies command group.
func NewCompaniesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "companies",
		Short: "Browse carrier companies",
	}

	cmd.AddCommand(newCompaniesListCommand())
	cmd.AddCommand(newCompaniesGetCommand())

	return cmd
}

func newCompaniesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List carriers connected to the tracking network",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			companies, err := client.Companies().InnerList(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list companies: %w", err)
			}

			if handled, err := renderStructured(companies); handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Code", "Phone")

			for _, company := range companies {
				_ = table.Append(formatInt(company.ID), company.Name, orNA(company.Code), orNA(company.Phone))
			}

			return table.Render()
		},
	}
}

func newCompaniesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <company-id>",
		Short: "Show one carrier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid company ID %q: %w", args[0], err)
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			company, err := client.Companies().GetByID(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to get company: %w", err)
			}

			if handled, err := renderStructured(company); handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")

			_ = table.Append("ID", formatInt(company.ID))
			_ = table.Append("Name", company.Name)
			_ = table.Append("Code", orNA(company.Code))
			_ = table.Append("Phone", orNA(company.Phone))
			_ = table.Append("Address", orNA(company.Address))
			_ = table.Append("Description", orNA(company.Description))

			return table.Render()
		},
	}
}

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewBannersCommand creates the banners command group.
func NewBannersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "banners",
		Short: "Browse banners and ads",
	}

	cmd.AddCommand(newBannersHomeCommand())
	cmd.AddCommand(newBannersCompanyCommand())
	cmd.AddCommand(newBannersAdsCommand())

	return cmd
}

func newBannersHomeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "List the app home carousel",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			banners, err := client.Banners().HomeBanners(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list banners: %w", err)
			}

			if handled, err := renderStructured(banners); handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Title", "Image")

			for _, banner := range banners {
				_ = table.Append(formatInt(banner.ID), orNA(banner.Title), banner.PicURL)
			}

			return table.Render()
		},
	}
}

func newBannersCompanyCommand() *cobra.Command {
	var companyID int64

	cmd := &cobra.Command{
		Use:   "company",
		Short: "List a carrier's banner carousel",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			banners, err := client.Banners().CompanyBanners(context.Background(), companyID)
			if err != nil {
				return fmt.Errorf("failed to list banners: %w", err)
			}

			if handled, err := renderStructured(banners); handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Title", "Image")

			for _, banner := range banners {
				_ = table.Append(formatInt(banner.ID), orNA(banner.Title), banner.PicURL)
			}

			return table.Render()
		},
	}

	cmd.Flags().Int64Var(&companyID, "company", 0, "carrier company ID")

	return cmd
}

func newBannersAdsCommand() *cobra.Command {
	var companyID int64

	cmd := &cobra.Command{
		Use:   "ads",
		Short: "List home footer ads",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ads, err := client.Banners().AdList(context.Background(), companyID)
			if err != nil {
				return fmt.Errorf("failed to list ads: %w", err)
			}

			if handled, err := renderStructured(ads); handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Title", "Image")

			for _, ad := range ads {
				_ = table.Append(formatInt(ad.ID), orNA(ad.Title), ad.PicURL)
			}

			return table.Render()
		},
	}

	cmd.Flags().Int64Var(&companyID, "company", 0, "carrier company ID")

	return cmd
}

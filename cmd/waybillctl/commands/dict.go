package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewDictCommand creates the dict command.
func NewDictCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dict <dict-type> <value>",
		Short: "Resolve a dictionary entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			entry, err := client.Dict().GetByValue(context.Background(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to resolve dictionary entry: %w", err)
			}

			if handled, err := renderStructured(entry); handled {
				return err
			}

			if entry == nil {
				fmt.Println("No entry found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Type", "Value", "Label")

			_ = table.Append(entry.DictType, entry.Value, entry.Label)

			return table.Render()
		},
	}
}

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pb003jbl/ticketrca/internal/dataset"
	"github.com/pb003jbl/ticketrca/internal/ticket"
)

var inspectFile string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarize a ticket export: distributions, resolution metrics, keywords",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(); err != nil {
			return err
		}

		table, err := dataset.NewLoader().LoadFile(inspectFile)
		if err != nil {
			return err
		}
		store := ticket.NewNormalizer().Normalize(table)
		summary := ticket.Summarize(store)

		encoded, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectFile, "file", "", "Path to the ticket export (CSV)")
	_ = inspectCmd.MarkFlagRequired("file")
}

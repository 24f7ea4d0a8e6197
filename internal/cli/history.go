package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent dispatch outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if app.History == nil {
			return fmt.Errorf("history is disabled in config")
		}

		entries, err := app.History.Recent(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}

		for _, entry := range entries {
			status := "ok"
			if !entry.Success {
				status = "failed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  [%s]  %s\n", entry.CreatedAt.Format("2006-01-02 15:04:05"), status, entry.Query)
			if entry.Error != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", entry.Error)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum entries to show")
	rootCmd.AddCommand(historyCmd)
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <query>",
	Short: "Dispatch a single query and print the result",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()

		query := strings.Join(args, " ")
		outcome := app.Dispatcher.Dispatch(cmd.Context(), query)

		if outcome.Narrative != "" {
			fmt.Fprintln(cmd.OutOrStdout(), outcome.Narrative)
		}
		for _, result := range outcome.Results {
			if !result.Success {
				fmt.Fprintf(cmd.OutOrStdout(), "[%s failed] %s\n", result.Tool, result.Error)
			}
		}
		if !outcome.Success {
			return fmt.Errorf("%s", outcome.Error)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the registered tool catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()

		for _, def := range app.Registry.All() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s - %s\n", def.Name, def.Description)
			for _, param := range def.Parameters {
				required := ""
				if param.Required {
					required = " (required)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s%s - %s\n", param.Name, param.Type, required, param.Description)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}

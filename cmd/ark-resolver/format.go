package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newFormatCmd creates the format command, which builds an ARK URL from
// a resource IRI.
func newFormatCmd(configPath *string) *cobra.Command {
	var valueID, timestamp string

	cmd := &cobra.Command{
		Use:   "format <resource-iri>",
		Short: "Format a resource IRI as an ARK URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadResolver(cmd.Context(), *configPath)
			if err != nil {
				return err
			}

			arkURL, err := r.ARKURL(args[0], valueID, timestamp)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), arkURL)
			return nil
		},
	}
	cmd.Flags().StringVar(&valueID, "value", "", "value ID to include in the ARK URL")
	cmd.Flags().StringVar(&timestamp, "timestamp", "", "version timestamp to append")
	return cmd
}

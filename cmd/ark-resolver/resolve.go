package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newResolveCmd creates the resolve command, which prints the redirect
// target of an ARK identifier.
func newResolveCmd(configPath *string) *cobra.Command {
	var printIRI bool

	cmd := &cobra.Command{
		Use:   "resolve <ark-id>",
		Short: "Resolve an ARK identifier to its redirect URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadResolver(cmd.Context(), *configPath)
			if err != nil {
				return err
			}

			var out string
			if printIRI {
				out, err = r.ResourceIRI(args[0])
			} else {
				out, err = r.RedirectURL(args[0])
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&printIRI, "iri", false, "print the resource IRI instead of the redirect URL")
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is stamped by release builds via -ldflags "-X main.version=...".
var version = "dev"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the evtsift version",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "evtsift %s\n", version)
			return nil
		},
	}
}

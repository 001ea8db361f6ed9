package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardrender/pkg/render"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "List node types with registered override renderers",
	RunE: func(cmd *cobra.Command, args []string) error {
		tags := render.RegisteredTags()
		if len(tags) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no overrides registered")
			return nil
		}
		for _, tag := range tags {
			fmt.Fprintln(cmd.OutOrStdout(), tag)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registryCmd)
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardrender"
	"github.com/goliatone/go-cardrender/pkg/interact"
	"github.com/goliatone/go-cardrender/pkg/render"
)

var interactCmd = &cobra.Command{
	Use:   "interact FILE",
	Short: "Press a card's ShowCard and ToggleVisibility controls in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")

		c, err := cardrender.LoadFile(args[0])
		if err != nil {
			return err
		}
		options := []interact.Option{interact.WithLogger(current.logger)}
		if plain {
			options = append(options, interact.WithPlain())
		}
		session, err := interact.New(options...)
		if err != nil {
			return err
		}
		return session.Run(cmd.Context(), render.New(c, render.WithLogger(current.logger)))
	},
}

func init() {
	rootCmd.AddCommand(interactCmd)
	interactCmd.Flags().Bool("plain", false, "Disable colors and markdown styling")
}

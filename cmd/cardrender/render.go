package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardrender"
	"github.com/goliatone/go-cardrender/pkg/page"
	"github.com/goliatone/go-cardrender/pkg/render"
)

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Render a card file to HTML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		asPage, _ := cmd.Flags().GetBool("page")

		html, err := cardrender.RenderFile(args[0], render.WithLogger(current.logger))
		if err != nil {
			return err
		}
		out := []byte(html)
		if asPage {
			pages, err := page.New(page.WithRuntimePath(""), page.WithStylesheet(current.cfg.Server.Stylesheet))
			if err != nil {
				return err
			}
			if out, err = pages.Preview(args[0], html); err != nil {
				return err
			}
		}

		if output == "" {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		}
		if err := os.WriteFile(output, out, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		current.logger.Info("card written", "path", output, "bytes", len(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("output", "o", "", "Output file (stdout if empty)")
	renderCmd.Flags().Bool("page", false, "Wrap the fragment in a standalone HTML page")
}

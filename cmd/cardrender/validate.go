package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardrender"
	"github.com/goliatone/go-cardrender/pkg/render"
	"github.com/goliatone/go-cardrender/pkg/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check a card document for structural problems",
	Long: `Validate reports root-level errors (type, version, body) and warnings for
unknown node or action types, duplicate ids and dangling toggle targets.
With --strict, elements and actions are also matched against the bundled
card schema and mismatches are reported as warnings.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		strict, _ := cmd.Flags().GetBool("strict")

		doc, err := cardrender.LoadDocument(args[0])
		if err != nil {
			return err
		}
		options := []validation.Option{validation.WithKnownTypes(render.RegisteredTags()...)}
		if strict {
			options = append(options, validation.WithStructureCheck())
		}
		result := validation.Validate(doc, options...)

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return err
			}
		} else {
			printResult(out, args[0], result)
		}
		if !result.Valid() {
			return errors.New("validation failed")
		}
		return nil
	},
}

func printResult(out io.Writer, path string, result validation.Result) {
	if result.Valid() {
		fmt.Fprintln(out, colorize.GreenString("✓ ")+colorize.HiWhiteString("%s is valid (schema %s)", path, result.Schema))
	} else {
		fmt.Fprintln(out, colorize.RedString("✗ ")+colorize.HiWhiteString("%s has %d errors", path, len(result.Errors)))
		for i, issue := range result.Errors {
			fmt.Fprintf(out, "%d. %s %s\n", i+1, colorize.CyanString(displayPath(issue.Path)), issue.Message)
		}
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintln(out, colorize.YellowString("\nWarnings:"))
		for i, issue := range result.Warnings {
			fmt.Fprintf(out, "%d. %s %s\n", i+1, colorize.CyanString(displayPath(issue.Path)), issue.Message)
		}
	}
}

func displayPath(path string) string {
	if path == "" {
		return "(root)"
	}
	return path
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("json", false, "Print the result as JSON")
	validateCmd.Flags().Bool("strict", false, "Also match elements and actions against the bundled card schema")
}

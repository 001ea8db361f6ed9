package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardrender"
	"github.com/goliatone/go-cardrender/pkg/render"
	"github.com/goliatone/go-cardrender/pkg/workflow"
)

var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Call the remote card workflow service",
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a card from a prompt",
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt, _ := cmd.Flags().GetString("prompt")
		mode, _ := cmd.Flags().GetString("mode")
		draft, _ := cmd.Flags().GetInt("draft-level")

		client, err := newWorkflowClient()
		if err != nil {
			return err
		}
		resp, err := client.Generate(cmd.Context(), workflow.GeneratePayload{Prompt: prompt, Mode: mode, DraftLevel: draft})
		if err != nil {
			return reportWorkflowError(cmd.ErrOrStderr(), err)
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

var continueCmd = &cobra.Command{
	Use:   "continue FILE",
	Short: "Ask the service to extend an existing card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		action, _ := cmd.Flags().GetString("action")
		jottID, _ := cmd.Flags().GetString("jott-id")

		doc, err := cardrender.LoadDocument(args[0])
		if err != nil {
			return err
		}
		prior, ok := doc.(map[string]any)
		if !ok {
			return errors.New("card file must hold an object")
		}

		client, err := newWorkflowClient()
		if err != nil {
			return err
		}
		resp, err := client.Continue(cmd.Context(), workflow.ContinuePayload{JottID: jottID, PriorContent: prior, DesiredAction: action})
		if err != nil {
			return reportWorkflowError(cmd.ErrOrStderr(), err)
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Approve or send back a workflow step",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := workflow.ReviewPayload{}
		payload.WorkflowID, _ = cmd.Flags().GetString("workflow-id")
		payload.Step, _ = cmd.Flags().GetString("step")
		payload.Decision, _ = cmd.Flags().GetString("decision")
		payload.Feedback, _ = cmd.Flags().GetString("feedback")

		client, err := newWorkflowClient()
		if err != nil {
			return err
		}
		resp, err := client.Review(cmd.Context(), payload)
		if err != nil {
			return reportWorkflowError(cmd.ErrOrStderr(), err)
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

func newWorkflowClient() (*workflow.Client, error) {
	return workflow.New(current.cfg.Workflow, workflow.WithLogger(current.logger))
}

// reportWorkflowError prints the error panel markup, which carries the
// correlation id, and returns err for the exit status.
func reportWorkflowError(w io.Writer, err error) error {
	if panel := render.ErrorPanel(render.DefaultErrorTitle, err.Error(), workflow.CorrelationID(err)); panel != "" {
		fmt.Fprintln(w, panel)
	}
	return err
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.AddCommand(workflowCmd)
	workflowCmd.AddCommand(generateCmd, continueCmd, reviewCmd)

	generateCmd.Flags().String("prompt", "", "What the card should contain")
	generateCmd.Flags().String("mode", workflow.ModeNoCode, "Generation mode: no-code or pro-code")
	generateCmd.Flags().Int("draft-level", 0, "Draft level hint")
	_ = generateCmd.MarkFlagRequired("prompt")

	continueCmd.Flags().String("action", workflow.ActionExpand, "expand, analyze, lateral or temporal")
	continueCmd.Flags().String("jott-id", "", "Jott to continue")

	reviewCmd.Flags().String("workflow-id", "", "Workflow id")
	reviewCmd.Flags().String("step", "", "Step under review")
	reviewCmd.Flags().String("decision", workflow.DecisionApprove, "approve or revise")
	reviewCmd.Flags().String("feedback", "", "Reviewer feedback")
	_ = reviewCmd.MarkFlagRequired("workflow-id")
	_ = reviewCmd.MarkFlagRequired("step")
}

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nextstep/internal/feedback"
)

var (
	form        feedback.Payload
	fromDraft   bool
	feedbackOut string
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Validate, draft and export the feedback form",
	Long: `Work with the feedback form. Nothing is sent anywhere; submit only
records the simulated submission as recent activity.`,
}

var feedbackValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the form fields",
	Args:  cobra.NoArgs,
	RunE:  runFeedbackValidate,
}

var feedbackSaveDraftCmd = &cobra.Command{
	Use:   "save-draft",
	Short: "Save the form as a draft without validating",
	Args:  cobra.NoArgs,
	RunE:  runFeedbackSaveDraft,
}

var feedbackLoadDraftCmd = &cobra.Command{
	Use:   "load-draft",
	Short: "Print the saved draft",
	Args:  cobra.NoArgs,
	RunE:  runFeedbackLoadDraft,
}

var feedbackSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Validate the form and record a simulated submission",
	Args:  cobra.NoArgs,
	RunE:  runFeedbackSubmit,
}

var feedbackExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the form as plain text (Feedback.txt with --out)",
	Args:  cobra.NoArgs,
	RunE:  runFeedbackExport,
}

func init() {
	for _, c := range []*cobra.Command{feedbackValidateCmd, feedbackSaveDraftCmd, feedbackSubmitCmd, feedbackExportCmd} {
		f := c.Flags()
		f.StringVar(&form.Name, "name", "", "your name")
		f.StringVar(&form.Email, "email", "", "email address")
		f.StringVar(&form.Role, "role", "", "student, graduate, professional or other")
		f.StringVar(&form.Category, "category", "", "feedback category")
		f.StringVar(&form.Subject, "subject", "", "subject line")
		f.StringVar(&form.Message, "message", "", "message, 10 to 1000 characters")
		f.StringVar(&form.Company, "company", "", "")
		_ = f.MarkHidden("company")
	}
	for _, c := range []*cobra.Command{feedbackSubmitCmd, feedbackExportCmd} {
		c.Flags().BoolVar(&fromDraft, "from-draft", false, "use the saved draft instead of flags")
	}
	feedbackExportCmd.Flags().StringVarP(&feedbackOut, "out", "o", "", "write to this file instead of stdout")

	feedbackCmd.AddCommand(feedbackValidateCmd, feedbackSaveDraftCmd, feedbackLoadDraftCmd, feedbackSubmitCmd, feedbackExportCmd)
	rootCmd.AddCommand(feedbackCmd)
}

func payload(cmd *cobra.Command) (feedback.Payload, error) {
	if !fromDraft {
		return feedback.Normalize(form), nil
	}
	p, err := feedback.LoadDraft(cmd.Context(), current.store())
	if errors.Is(err, feedback.ErrNoDraft) {
		return p, errors.New("no saved draft")
	}
	return p, err
}

func runFeedbackValidate(cmd *cobra.Command, args []string) error {
	if err := feedback.Validate(form); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Looks good.")
	return nil
}

func runFeedbackSaveDraft(cmd *cobra.Command, args []string) error {
	if err := feedback.SaveDraft(cmd.Context(), current.store(), form); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Draft saved.")
	return nil
}

func runFeedbackLoadDraft(cmd *cobra.Command, args []string) error {
	p, err := feedback.LoadDraft(cmd.Context(), current.store())
	if errors.Is(err, feedback.ErrNoDraft) {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved draft.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), feedback.Text(p))
	return nil
}

func runFeedbackSubmit(cmd *cobra.Command, args []string) error {
	p, err := payload(cmd)
	if err != nil {
		return err
	}
	if err := feedback.Submit(cmd.Context(), current.store(), p); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Thanks! Your feedback was recorded (simulated).")
	return nil
}

func runFeedbackExport(cmd *cobra.Command, args []string) error {
	p, err := payload(cmd)
	if err != nil {
		return err
	}
	text := feedback.Text(p) + "\n"
	if feedbackOut == "" {
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	}
	if err := os.WriteFile(feedbackOut, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to export feedback: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported feedback to %s\n", feedbackOut)
	return nil
}

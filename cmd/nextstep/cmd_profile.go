package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"nextstep/internal/domain"
)

var userTypes = []string{"student", "graduate", "professional"}

var (
	profileName string
	profileType string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or set the name and user type used for tailoring",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save the profile for this session",
	Long: `Save a display name and user type (student, graduate or professional).
The profile expires after PROFILE_TTL. Empty flags clear their field.`,
	Args: cobra.NoArgs,
	RunE: runProfileSet,
}

var visitCmd = &cobra.Command{
	Use:   "visit",
	Short: "Count a visit and print the welcome line",
	Args:  cobra.NoArgs,
	RunE:  runVisit,
}

func init() {
	profileSetCmd.Flags().StringVar(&profileName, "name", "", "display name")
	profileSetCmd.Flags().StringVar(&profileType, "type", "", "user type: student, graduate or professional")
	profileCmd.AddCommand(profileSetCmd)
	rootCmd.AddCommand(profileCmd, visitCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	p := current.store().Profile(cmd.Context())
	w := cmd.OutOrStdout()
	if p.IsZero() {
		fmt.Fprintln(w, "No profile saved. Use: nextstep profile set --name NAME --type TYPE")
		return nil
	}
	fmt.Fprintln(w, p.Greeting())
	if t := p.Tailored(); t != "" {
		fmt.Fprintln(w, t)
	}
	return nil
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	p := domain.Profile{Name: profileName, UserType: strings.ToLower(strings.TrimSpace(profileType))}
	if p.UserType != "" && !slices.Contains(userTypes, p.UserType) {
		return fmt.Errorf("invalid user type %q (want student, graduate or professional)", profileType)
	}
	if err := current.store().SaveProfile(cmd.Context(), p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return runProfileShow(cmd, args)
}

func runVisit(cmd *cobra.Command, args []string) error {
	st := current.store()
	n, err := st.BumpVisits(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to count visit: %w", err)
	}
	p := st.Profile(cmd.Context())
	w := cmd.OutOrStdout()
	if greeting := p.Greeting(); greeting != "" {
		fmt.Fprintln(w, greeting)
	} else {
		fmt.Fprintln(w, "Welcome to NextStep Navigator!")
	}
	fmt.Fprintf(w, "Visit #%d\n", n)
	return nil
}

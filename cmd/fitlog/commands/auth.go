package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/myhealthapp/fitlog/internal/forms"
)

// NewRegisterCommand creates the register command
func NewRegisterCommand(a *app) *cobra.Command {
	var draft forms.RegisterDraft

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account on the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			draft = draft.Normalize()
			if err := forms.Validate(draft); err != nil {
				return err
			}
			if err := a.client.Register(cmd.Context(), draft.Email, draft.Password, draft.DisplayName); err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Registration successful! Log in with: fitlog login --email", draft.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&draft.DisplayName, "display-name", "", "Name shown in the greeting")
	cmd.Flags().StringVar(&draft.Password, "password", "", "Account password")
	return cmd
}

// NewLoginCommand creates the login command
func NewLoginCommand(a *app) *cobra.Command {
	var draft forms.LoginDraft

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Long: `Log in and remember the session token for later commands and the TUI.
The password is read from standard input when --password is omitted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if draft.Password == "" {
				password, err := prompt(cmd, "Password: ")
				if err != nil {
					return err
				}
				draft.Password = password
			}

			draft = draft.Normalize()
			if err := forms.Validate(draft); err != nil {
				return err
			}

			resp, err := a.client.Login(cmd.Context(), draft.Email, draft.Password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			if resp.DisplayName != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s!\n", resp.DisplayName)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Logged in.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&draft.Password, "password", "", "Account password")
	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.client.Logout(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

// prompt writes label and reads one line from the command's input.
func prompt(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), label)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSessionCommand creates the session command
func NewSessionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Print the stored session and configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Session")
			fmt.Fprintln(out, "=======")
			fmt.Fprintf(out, "API base URL:  %s\n", orNone(a.client.BaseURL()))
			switch {
			case a.ephemeral:
				fmt.Fprintln(out, "Session store: in memory")
			case a.cfg != nil:
				fmt.Fprintf(out, "Session store: %s\n", a.cfg.SessionDBPath())
			}

			token, ok := a.store.Token()
			if !ok {
				fmt.Fprintln(out, "Logged in:     no")
				return nil
			}
			fmt.Fprintln(out, "Logged in:     yes")
			fmt.Fprintf(out, "Token:         %s\n", maskToken(token))
			if name, ok := a.store.DisplayName(); ok {
				fmt.Fprintf(out, "Display name:  %s\n", name)
			}
			return nil
		},
	}
}

func orNone(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

// maskToken keeps the first four characters
func maskToken(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return token[:4] + "****"
}

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/zhubert/codecheck/internal/browse"
	"github.com/zhubert/codecheck/internal/errors"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	cfg, client, err := newClient()
	if err != nil {
		return err
	}
	printSession(cmd.OutOrStdout(), client.Session(cmd.Context()), cfg.LoginURL())
	return nil
}

// printSession writes the session banner. A failed identity check reads
// as signed out, with the reason on a second line.
func printSession(w io.Writer, s browse.Session, loginURL string) {
	if s.Authenticated {
		name := s.Username
		if name == "" {
			name = "(unknown)"
		}
		fmt.Fprintf(w, "Signed in as @%s\n", name)
		if s.AvatarURL != "" {
			fmt.Fprintf(w, "Avatar: %s\n", s.AvatarURL)
		}
		return
	}

	fmt.Fprintf(w, "Not signed in. Sign in at %s\n", loginURL)
	if s.Err != nil {
		fmt.Fprintf(w, "Session check failed: %s\n", errors.Detail(s.Err))
	}
}

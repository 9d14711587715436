package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/zhubert/codecheck/internal/browse"
	"github.com/zhubert/codecheck/internal/errors"
)

var lsCmd = &cobra.Command{
	Use:   "ls [owner/repo] [path]",
	Short: "List repositories, or the contents of a repository directory",
	Long: `Without arguments, lists the repositories of the signed-in account.
With a repository, lists the directory at path (the root when omitted).
Directories are printed with a trailing slash.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	const op = errors.Op("cmd.ls")

	var owner, name, path string
	if len(args) > 0 {
		var ok bool
		owner, name, ok = browse.Repository{FullName: args[0]}.Split()
		if !ok {
			return errors.E(op, errors.KindInvalid, fmt.Sprintf("invalid repository %q, expected owner/name", args[0]))
		}
	}
	if len(args) > 1 {
		path = args[1]
	}

	_, client, err := newClient()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if owner == "" {
		repos := browse.NewRepoBrowser()
		tok := repos.Begin()
		listing, err := client.Repositories(cmd.Context())
		repos.Apply(tok, listing, err)
		return printRows(out, repos.Rows())
	}

	nav := browse.NewNavigator()
	tok := nav.Load(owner, name, path)
	listing, err := client.Contents(cmd.Context(), owner, name, path)
	nav.Apply(tok, listing, err)
	if err := printRows(out, nav.Rows()); err != nil {
		return err
	}
	if nav.Empty() {
		fmt.Fprintln(out, "(empty directory)")
	}
	return nil
}

// printRows prints the rows a panel would show. The parent row is
// omitted; failure rows become the returned error.
func printRows(w io.Writer, rows []browse.Row) error {
	for _, r := range rows {
		switch r.Kind {
		case browse.RowParent:
			continue
		case browse.RowError:
			return errors.E(errors.Op("cmd.ls"), r.Label)
		}
		fmt.Fprintln(w, r.Label)
	}
	return nil
}

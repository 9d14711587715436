package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/zhubert/codecheck/internal/errors"
	"github.com/zhubert/codecheck/internal/logger"
	"github.com/zhubert/codecheck/internal/report"
)

var checkOutDir string

var checkCmd = &cobra.Command{
	Use:   "check [file|-]",
	Short: "Submit code for analysis and save report.md",
	Long: `Reads code from a file, or from stdin when the argument is "-" or
omitted, submits it for analysis and writes the report to report.md in the
output directory. An existing report.md is replaced.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkOutDir, "out", "o", "", "Directory to write report.md to (default: configured download dir)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	code, err := readCode(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	// Validate before touching the network.
	if code == "" {
		return errors.EmptySubmission()
	}

	cfg, client, err := newClient()
	if err != nil {
		return err
	}

	data, err := client.Submit(cmd.Context(), code)
	if err != nil {
		return fmt.Errorf("check failed: %s", errors.Detail(err))
	}

	dir := checkOutDir
	if dir == "" {
		dir = cfg.GetDownloadDir()
	}
	path, err := report.Save(dir, data)
	if err != nil {
		return err
	}

	logger.Info("check: report saved to %s", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", path)
	return nil
}

// readCode returns the code to submit: the named file, or stdin for "-"
// or no argument
func readCode(stdin io.Reader, args []string) (string, error) {
	const op = errors.Op("cmd.readCode")

	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.E(op, errors.KindIO, "failed to read stdin", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", errors.E(op, errors.KindIO, "failed to read "+args[0], err)
	}
	return string(data), nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"kriskowal.com/go/caret/internal/fixture"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var ordered bool

	checkCmd := &cobra.Command{
		Use:   "check DIR...",
		Short: "Run fixture directories",
		Long: `Runs every NAME.cfg document in each directory against NAME.json (the
expected value) or NAME.error (a substring of the expected error).

Examples:
  caret check testdata/valid testdata/invalid
  caret check --ordered testdata/valid`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			logger := newLogger(cmd, opts)
			runner := &fixture.Runner{
				Options: parseOptions(cfg, logger),
				Ordered: ordered,
				Logger:  logger,
			}

			out := cmd.OutOrStdout()
			total, failed := 0, 0
			for _, dir := range args {
				cases, err := fixture.Discover(dir)
				if err != nil {
					return err
				}
				report, err := runner.Run(cases)
				if err != nil {
					return err
				}
				for _, res := range report.Results {
					if res.Passed {
						fmt.Fprintf(out, "PASS %s/%s\n", dir, res.Name)
						continue
					}
					fmt.Fprintf(out, "FAIL %s/%s\n", dir, res.Name)
					if res.Diff != "" {
						fmt.Fprintf(out, "  diff: %s\n", res.Diff)
					}
					if res.Err != nil {
						fmt.Fprintf(out, "  error: %s\n", res.Err)
					}
				}
				total += len(report.Results)
				failed += report.Failed()
			}

			fmt.Fprintf(out, "%d passed, %d failed\n", total-failed, failed)
			if failed > 0 {
				return fmt.Errorf("%d of %d fixtures failed", failed, total)
			}
			return nil
		},
	}

	checkCmd.Flags().BoolVar(&ordered, "ordered", false, "Also require map keys in the expected order")
	return checkCmd
}

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/topicgraph"
)

var errCheckFailed = errors.New("question bank has errors")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the question bank for malformed or duplicate rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}

		f, err := os.Open(rt.cfg.Bank.Path)
		if err != nil {
			return fmt.Errorf("open question bank: %w", err)
		}
		defer f.Close()

		table, err := bank.ReadTable(f)
		if err != nil {
			return err
		}
		report := bank.CheckIntegrity(table)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d rows\n", rt.cfg.Bank.Path, report.Rows)
		for _, fd := range report.Findings {
			fmt.Fprintf(out, "[%s] %s\n", fd.Severity, fd.Message)
			for _, r := range fd.Rows {
				fmt.Fprintf(out, "    line %d  id %d  %s\n", r.Line, r.ID, truncate(r.Question, 60))
			}
		}

		if b, err := rt.loadBank(); err == nil {
			for _, w := range topicgraph.Default().Check(b.Topics()) {
				fmt.Fprintf(out, "[topics] %s\n", w)
			}
		}

		if !report.OK() {
			return errCheckFailed
		}
		fmt.Fprintln(out, "OK")
		return nil
	},
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget which questions the latest session has seen",
	Long: "reset clears the seen-question set of the latest session so every question " +
		"becomes available again. With --all the quiz history is cleared as well.",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		ctx := cmd.Context()

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		st, err := rt.openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		t, err := rt.newTutor(ctx, st, false)
		if err != nil {
			return err
		}
		s, err := t.ResumeLatest(ctx)
		if err != nil {
			return fmt.Errorf("open session: %w", err)
		}

		out := cmd.OutOrStdout()
		if all {
			if err := t.ResetAll(ctx, s); err != nil {
				return err
			}
			fmt.Fprintln(out, "Cleared seen questions and quiz history.")
			return nil
		}
		if err := t.Reset(ctx, s); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared seen questions. %d questions available.\n", t.Bank().Len())
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Also clear the quiz history")
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Print the next recommended quiz for the latest session",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
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

		rc := t.Recommend(s)
		out := cmd.OutOrStdout()
		if asJSON {
			return writeJSON(out, rc)
		}
		if rc.Exhausted {
			fmt.Fprintln(out, "All questions have been seen. Run `adaptiq reset` to keep practicing.")
			return nil
		}
		fmt.Fprintf(out, "Topic:       %s\n", rc.Topic)
		fmt.Fprintf(out, "Difficulty:  %s\n", rc.Difficulty.Title())
		fmt.Fprintf(out, "Questions:   %d (%d unseen)\n", rc.NumQuestions, rc.Available)
		fmt.Fprintf(out, "Reason:      %s\n", rc.Reason)
		if rc.Message != "" {
			fmt.Fprintf(out, "\n%s\n", rc.Message)
		}
		if rc.Note != "" {
			fmt.Fprintln(out, rc.Note)
		}
		return nil
	},
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	recommendCmd.Flags().Bool("json", false, "Print as JSON")
}

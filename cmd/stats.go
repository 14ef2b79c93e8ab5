package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/predict"
	"github.com/abhisek/adaptiq/internal/recommend"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics for the latest session",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		withProfile, _ := cmd.Flags().GetBool("profile")
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

		t, err := rt.newTutor(ctx, st, withProfile)
		if err != nil {
			return err
		}
		s, err := t.ResumeLatest(ctx)
		if err != nil {
			return fmt.Errorf("open session: %w", err)
		}

		stats := t.Stats(s)
		var pred *predict.Prediction
		if withProfile {
			pred, _ = t.Predict(ctx, s)
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return writeJSON(out, struct {
				Stats      recommend.Stats     `json:"stats"`
				Prediction *predict.Prediction `json:"prediction,omitempty"`
			}{stats, pred})
		}
		printStats(out, stats)
		if pred != nil {
			printPrediction(out, pred)
		}
		return nil
	},
}

func printStats(w io.Writer, st recommend.Stats) {
	if st.TotalQuizzes == 0 {
		fmt.Fprintln(w, "No quizzes taken yet.")
		return
	}
	rule := strings.Repeat("─", 48)
	fmt.Fprintf(w, "Quizzes:   %d\n", st.TotalQuizzes)
	fmt.Fprintf(w, "Correct:   %d/%d (%.0f%%)\n", st.TotalCorrect, st.TotalQuestions, st.OverallAccuracy*100)
	if st.BestTopic != "" {
		fmt.Fprintf(w, "Best:      %s\n", st.BestTopic)
		fmt.Fprintf(w, "Weakest:   %s\n", st.WorstTopic)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-20s  %8s  %8s  %8s\n", "Topic", "Quizzes", "Correct", "Accuracy")
	fmt.Fprintln(w, rule)
	for _, ts := range st.Topics {
		fmt.Fprintf(w, "%-20s  %8d  %5d/%-3d %7.0f%%\n",
			truncate(ts.Topic, 20), ts.Quizzes, ts.Correct, ts.Total, ts.Accuracy*100)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-20s  %8s  %8s\n", "Difficulty", "Quizzes", "Average")
	fmt.Fprintln(w, rule)
	for _, ds := range st.Difficulties {
		fmt.Fprintf(w, "%-20s  %8d  %7.0f%%\n", ds.Difficulty.Title(), ds.Quizzes, ds.AvgAccuracy*100)
	}

	a := st.Analysis
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Pattern:   %s (%s)\n", a.Pattern, a.Trend)
	fmt.Fprintf(w, "Recent:    %.0f%% · consistency %.0f%%\n", a.RecentAvg*100, a.Consistency*100)
	if len(a.StrugglingTopics) > 0 {
		fmt.Fprintf(w, "Review:    %s\n", strings.Join(a.StrugglingTopics, ", "))
	}
}

func printPrediction(w io.Writer, p *predict.Prediction) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Learner:    %s (%.0f%%)\n", p.LearnerType, p.LearnerProbs[p.LearnerType]*100)
	fmt.Fprintf(w, "Engagement: %s (%.0f%%)\n", p.Engagement, p.EngagementProbs[p.Engagement]*100)
	fmt.Fprintf(w, "Source:     %s\n", p.Source)
	if p.Rationale != "" {
		fmt.Fprintf(w, "\n%s\n", p.Rationale)
	}
}

func init() {
	statsCmd.Flags().Bool("json", false, "Print as JSON")
	statsCmd.Flags().Bool("profile", true, "Include the learner profile prediction")
}

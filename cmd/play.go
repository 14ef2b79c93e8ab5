package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/app"
	"github.com/abhisek/adaptiq/internal/config"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz session in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		fresh, _ := cmd.Flags().GetBool("new")
		return runPlay(cmd, fresh)
	},
}

func init() {
	playCmd.Flags().Bool("new", false, "Start a new session instead of resuming the latest one")
}

// runPlay opens the store, builds the tutor and launches the TUI.
func runPlay(cmd *cobra.Command, fresh bool) error {
	ctx := cmd.Context()
	rt, err := setup(cmd)
	if err != nil {
		return err
	}

	dbPath, err := rt.dbPath()
	if err != nil {
		return err
	}
	// The TUI owns the terminal, so logs go to a file.
	logFile := rt.cfg.Log.File
	if logFile == "" {
		logFile = config.DefaultLogFile(dbPath)
	}
	closer, err := config.RedirectToFile(rt.log, logFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	st, err := rt.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	t, err := rt.newTutor(ctx, st, true)
	if err != nil {
		return err
	}

	open := t.ResumeLatest
	if fresh {
		open = t.NewSession
	}
	s, err := open(ctx)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	rt.log.WithField("session", s.ID).Info("starting player")

	return app.Run(app.Options{Tutor: t, Session: s})
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/api"
	"github.com/abhisek/adaptiq/internal/validate"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			rt.cfg.Server.Addr = addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		st, err := rt.openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		t, err := rt.newTutor(ctx, st, true)
		if err != nil {
			return err
		}

		h := api.NewHandler(t, validate.New(), rt.log)
		app := api.NewApp(api.Config{
			AppName:     rt.cfg.Server.AppName,
			CORSOrigins: rt.cfg.Server.CORSOrigins,
		}, h, rt.log)

		errc := make(chan error, 1)
		go func() {
			rt.log.WithField("addr", rt.cfg.Server.Addr).Info("http server listening")
			errc <- app.Listen(rt.cfg.Server.Addr)
		}()

		select {
		case err := <-errc:
			return fmt.Errorf("listen: %w", err)
		case <-ctx.Done():
		}

		rt.log.Info("shutting down http server")
		sctx, cancel := context.WithTimeout(context.Background(), rt.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(sctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}

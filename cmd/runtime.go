package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/config"
	"github.com/abhisek/adaptiq/internal/llm"
	"github.com/abhisek/adaptiq/internal/predict"
	"github.com/abhisek/adaptiq/internal/recommend"
	"github.com/abhisek/adaptiq/internal/store"
	"github.com/abhisek/adaptiq/internal/tutor"
)

// runtime is what every command builds first: settings, a logger and,
// on demand, the store and the tutor.
type runtime struct {
	v      *viper.Viper
	cfg    *config.Config
	log    *logrus.Logger
	stderr io.Writer
}

// setup loads configuration with the persistent flags bound on top.
func setup(cmd *cobra.Command) (*runtime, error) {
	configFile, _ := cmd.Flags().GetString("config")
	v, err := config.NewViper(configFile)
	if err != nil {
		return nil, err
	}
	for key, flag := range map[string]string{"bank.path": "bank", "database.path": "db"} {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind --%s: %w", flag, err)
			}
		}
	}
	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, err
	}
	return &runtime{v: v, cfg: cfg, log: config.NewLogger(v), stderr: cmd.ErrOrStderr()}, nil
}

func (r *runtime) dbPath() (string, error) {
	p, err := r.cfg.DBPath()
	if err != nil {
		return "", fmt.Errorf("resolve database path: %w", err)
	}
	if err := store.EnsureDir(p); err != nil {
		return "", fmt.Errorf("create database directory: %w", err)
	}
	return p, nil
}

func (r *runtime) openStore() (*store.Store, error) {
	p, err := r.dbPath()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

func (r *runtime) loadBank() (*bank.Bank, error) {
	return bank.Load(r.cfg.Bank.Path)
}

// provider returns the configured LLM, or nil. Running without any
// provider is normal and only logged; a provider that is set up but
// broken is reported on stderr.
func (r *runtime) provider(ctx context.Context, repo store.EventRepo) llm.Provider {
	if !r.cfg.Predict.UseLLM {
		return nil
	}
	p, err := llm.FromConfig(ctx, r.cfg.LLM, repo, r.log)
	if errors.Is(err, llm.ErrNotConfigured) {
		r.log.Debug("no llm provider configured, AI features disabled")
		return nil
	}
	if err != nil {
		r.log.WithError(err).Warn("llm provider setup failed")
		fmt.Fprintln(r.stderr, "LLM provider not configured:", err)
		fmt.Fprintln(r.stderr, "AI features will be unavailable.")
		return nil
	}
	return p
}

// newTutor wires bank, recommender, predictor and store together.
func (r *runtime) newTutor(ctx context.Context, st *store.Store, withLLM bool) (*tutor.Tutor, error) {
	b, err := r.loadBank()
	if err != nil {
		return nil, err
	}
	rec := recommend.New(b.Topics(), recommend.WithPolicy(r.cfg.Policy))

	var popts []predict.Option
	if withLLM {
		popts = append(popts, predict.WithLLM(r.provider(ctx, st.EventRepo())))
	}
	pred := predict.NewServiceFromPath(r.cfg.Predict.ModelPath, r.log, popts...)

	return tutor.New(b, rec,
		tutor.WithRepos(tutor.ReposFrom(st)),
		tutor.WithPredictor(pred),
		tutor.WithLogger(r.log),
	), nil
}

// Package cli wires configuration, storage and the generator into the
// console and its headless subcommands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"dalil/internal/activity"
	"dalil/internal/analytics"
	"dalil/internal/clipboard"
	"dalil/internal/config"
	"dalil/internal/directory"
	"dalil/internal/extract"
	"dalil/internal/generate"
	"dalil/internal/logger"
	"dalil/internal/signal"
	"dalil/internal/store"
	"dalil/internal/trace"
	"dalil/internal/ui"
	"dalil/internal/wizard"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath string
	debug      bool
	generator  string
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "dalil",
		Short:        "Console d'administration des textes juridiques",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConsole(cmd.Context(), opts, cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/dalil/config.toml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable verbose logging to <data dir>/logs/dalil.log")
	cmd.PersistentFlags().StringVar(&opts.generator, "generator", "", "override the generator provider (simulated, openai)")

	cmd.AddCommand(searchCmd(&opts))
	cmd.AddCommand(exportCmd(&opts))
	cmd.AddCommand(generateCmd(&opts))
	return cmd
}

func runConsole(ctx context.Context, opts options, stderr io.Writer) error {
	e, err := openEnv(ctx, opts, stderr)
	if err != nil {
		return err
	}
	defer e.Close()

	catalog, err := directory.Builtin()
	if err != nil {
		return fmt.Errorf("load directory: %w", err)
	}

	var ex extract.Extractor
	if e.cfg.Extract.Enabled {
		ex = extract.Heuristic{}
	}

	log := logger.L()
	model := ui.NewAppModel(ui.Deps{
		Bus:       signal.NewBus(log),
		Store:     e.store,
		Generator: e.gen,
		Extractor: ex,
		Catalog:   catalog,
		Feed:      activity.NewFeed(10, e.store, log),
		Clipboard: clipboard.Default(),
		Opener:    directory.SystemOpener{},
		Trends:    analytics.NewTrends(nil),
		Timing:    e.timing(),
		ExportDir: filepath.Join(e.cfg.Data.Dir, "exports"),
		Logger:    log,
	})
	defer model.Close()

	p := tea.NewProgram(model.AsTeaModel(), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		log.Error("console.exit", "err", err)
		return err
	}
	return nil
}

// env holds what every command needs: config, logger, store and generator.
type env struct {
	cfg    config.Config
	store  *store.Store
	gen    generate.Generator
	tracer *trace.Tracer
	close  []func()
}

func openEnv(ctx context.Context, opts options, stderr io.Writer) (*env, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.generator != "" {
		cfg.Generator.Provider = opts.generator
	}

	e := &env{cfg: cfg}
	cleanup, err := logger.Setup(logger.Config{Dir: cfg.Data.Dir, Debug: opts.debug})
	if err != nil {
		fmt.Fprintf(stderr, "dalil: logging disabled: %v\n", err)
	} else if cleanup != nil {
		e.close = append(e.close, func() { _ = cleanup() })
	}
	log := logger.L()

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.store = st
	e.close = append(e.close, func() { _ = st.Close() })

	tracer, err := trace.New(ctx, trace.Settings{Endpoint: cfg.Trace.Endpoint, Insecure: cfg.Trace.Insecure, Logger: log})
	if err != nil {
		log.Warn("trace.disabled", "err", err)
		tracer = trace.Noop()
	}
	e.tracer = tracer
	e.close = append(e.close, func() { _ = tracer.Shutdown(context.Background()) })

	gen, err := generate.New(generate.Settings{
		Provider: cfg.Generator.Provider,
		Model:    cfg.Generator.Model,
		APIKey:   cfg.Generator.ResolvedAPIKey(),
		BaseURL:  cfg.Generator.BaseURL,
	})
	if err != nil {
		e.Close()
		return nil, err
	}
	e.gen = tracer.Generator(gen)

	log.Info("env.ready", "db", cfg.Database.Path, "generator", cfg.Generator.Provider, "trace", tracer.Enabled())
	return e, nil
}

func (e *env) timing() wizard.Timing {
	return wizard.Timing{Step: e.cfg.Wizard.Step, Interval: e.cfg.Wizard.Interval}
}

// Close releases resources in reverse order of acquisition.
func (e *env) Close() {
	for i := len(e.close) - 1; i >= 0; i-- {
		e.close[i]()
	}
	e.close = nil
}
